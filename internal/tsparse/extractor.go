package tsparse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// maxValueLen bounds the stored rendering of a variable initializer.
const maxValueLen = 100

// enumPreviewLen is how many members an enum signature shows before
// truncating with a "+N more" suffix.
const enumPreviewLen = 5

// Extractor normalizes the exported declarations of TypeScript source files
// into Declaration records. Only declarations explicitly marked exported are
// emitted; non-exported siblings are ignored entirely.
type Extractor struct {
	language *sitter.Language
	docs     DocExtractor
}

// NewExtractor creates an extractor backed by the TypeScript grammar.
func NewExtractor() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
		docs:     jsDocFor,
	}
}

// ModuleForFile derives the module grouping key from a root-relative path:
// the first path segment, or "root" for files directly under the source root.
func ModuleForFile(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	if i := strings.Index(relPath, "/"); i >= 0 {
		return relPath[:i]
	}
	return "root"
}

// ExtractFile reads and parses one source file. Unreadable files surface an
// error; unparseable ones contribute zero declarations.
func (e *Extractor) ExtractFile(ctx context.Context, absPath, relPath string) ([]Declaration, error) {
	source, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	return e.Extract(source, relPath), nil
}

// Extract parses source and returns one Declaration per exported top-level
// declaration, plus one per re-export clause.
func (e *Extractor) Extract(source []byte, relPath string) []Declaration {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	relPath = filepath.ToSlash(relPath)
	module := ModuleForFile(relPath)

	var decls []Declaration
	for _, stmt := range namedChildren(tree.RootNode()) {
		if stmt.Kind() != "export_statement" {
			continue
		}
		for _, d := range e.extractExport(stmt, source) {
			d.File = relPath
			d.Module = module
			decls = append(decls, d)
		}
	}
	return decls
}

// extractExport dispatches one export statement to the kind-specific rule.
func (e *Extractor) extractExport(export *sitter.Node, source []byte) []Declaration {
	decl := export.ChildByFieldName("declaration")
	if decl == nil {
		if re := e.extractReExport(export, source); re != nil {
			return []Declaration{*re}
		}
		return nil
	}

	// "export declare ..." wraps the declaration in an ambient node.
	if decl.Kind() == "ambient_declaration" && decl.NamedChildCount() > 0 {
		decl = decl.NamedChild(0)
	}

	docs := e.docs(export, source)

	var out []Declaration
	switch decl.Kind() {
	case "interface_declaration":
		if d := e.extractInterface(decl, source); d != nil {
			out = append(out, *d)
		}
	case "type_alias_declaration":
		if d := e.extractTypeAlias(decl, source); d != nil {
			out = append(out, *d)
		}
	case "enum_declaration":
		if d := e.extractEnum(decl, source); d != nil {
			out = append(out, *d)
		}
	case "function_declaration", "generator_function_declaration":
		if d := e.extractFunction(decl, source); d != nil {
			out = append(out, *d)
		}
	case "class_declaration", "abstract_class_declaration":
		if d := e.extractClass(decl, source); d != nil {
			out = append(out, *d)
		}
	case "lexical_declaration", "variable_declaration":
		out = append(out, e.extractVariables(decl, source)...)
	case "internal_module", "module":
		if d := e.extractNamespace(decl, source); d != nil {
			out = append(out, *d)
		}
	}

	for i := range out {
		out[i].Docs = docs
		out[i].LineNumber = lineOf(export)
	}
	return out
}

// extractTypeAlias emits a type record. The signature carries the simplified
// right-hand side; the full signature keeps the raw text.
func (e *Extractor) extractTypeAlias(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	params := e.extractTypeParameters(node, source)

	valueNode := node.ChildByFieldName("value")
	raw := strings.TrimSpace(nodeText(valueNode, source))
	simplified := simplifyTypeText(raw)

	head := "type " + name + renderTypeParams(params) + " = "
	return &Declaration{
		Name:           name,
		Kind:           KindType,
		Signature:      head + simplified,
		FullSignature:  head + collapseWhitespace(raw),
		TypeParameters: params,
	}
}

// extractEnum emits an enum record. Members keep every entry; the signature
// is a preview truncated after the first few.
func (e *Extractor) extractEnum(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)

	var members []string
	for _, m := range namedChildren(node.ChildByFieldName("body")) {
		switch m.Kind() {
		case "enum_assignment":
			mn := nodeText(m.ChildByFieldName("name"), source)
			mv := strings.TrimSpace(nodeText(m.ChildByFieldName("value"), source))
			if mv == "" {
				mv = "auto"
			}
			members = append(members, mn+" = "+mv)
		case "comment":
			// not a member
		default:
			members = append(members, nodeText(m, source)+" = auto")
		}
	}

	keyword := "enum"
	if hasChildOfKind(node, "const") {
		keyword = "const enum"
	}

	preview := members
	more := 0
	if len(members) > enumPreviewLen {
		preview = members[:enumPreviewLen]
		more = len(members) - enumPreviewLen
	}
	sig := keyword + " " + name + " { " + strings.Join(preview, ", ")
	if more > 0 {
		sig += fmt.Sprintf(", +%d more", more)
	}
	sig += " }"

	return &Declaration{
		Name:      name,
		Kind:      KindEnum,
		Signature: sig,
		Members:   members,
	}
}

// extractFunction emits a function record with a rendered call signature.
func (e *Extractor) extractFunction(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	params := e.extractTypeParameters(node, source)

	sig := "function " + name + renderTypeParams(params) +
		"(" + strings.Join(renderParameters(node.ChildByFieldName("parameters"), source), ", ") + ")"
	if ret := annotationType(node.ChildByFieldName("return_type"), source); ret != "" {
		sig += ": " + ret
	}

	return &Declaration{
		Name:           name,
		Kind:           KindFunction,
		Signature:      sig,
		TypeParameters: params,
	}
}

// extractVariables emits one variable record per exported declarator.
func (e *Extractor) extractVariables(node *sitter.Node, source []byte) []Declaration {
	declKind := "const"
	if first := node.Child(0); first != nil {
		switch first.Kind() {
		case "const", "let", "var":
			declKind = first.Kind()
		}
	}

	var out []Declaration
	for _, declarator := range findChildrenByKind(node, "variable_declarator") {
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, source)
		valueNode := declarator.ChildByFieldName("value")

		typeText := annotationType(declarator.ChildByFieldName("type"), source)
		if typeText == "" {
			typeText = literalTypeOf(valueNode, source)
		}

		sig := declKind + " " + name
		if typeText != "" {
			sig += ": " + typeText
		}

		d := Declaration{
			Name:      name,
			Kind:      KindVariable,
			Signature: sig,
		}
		if valueNode != nil {
			d.Value = truncate(collapseWhitespace(nodeText(valueNode, source)), maxValueLen)
		}
		out = append(out, d)
	}
	return out
}

// literalTypeOf guesses a variable's type from the shape of its initializer.
// There is no type checker here, so only literal shapes are recognized.
func literalTypeOf(value *sitter.Node, source []byte) string {
	if value == nil {
		return ""
	}
	switch value.Kind() {
	case "string", "template_string":
		return "string"
	case "number":
		return "number"
	case "true", "false":
		return "boolean"
	case "array":
		return "any[]"
	case "object":
		return "object"
	case "arrow_function", "function_expression", "generator_function":
		return "function"
	case "new_expression":
		return simplifyTypeText(nodeText(value.ChildByFieldName("constructor"), source))
	}
	return ""
}

// extractNamespace emits a namespace record listing one "kind name" line per
// nested exported declaration, nested namespaces included.
func (e *Extractor) extractNamespace(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)

	var members []string
	for _, stmt := range namedChildren(node.ChildByFieldName("body")) {
		if stmt.Kind() != "export_statement" {
			continue
		}
		decl := stmt.ChildByFieldName("declaration")
		if decl == nil {
			continue
		}
		if decl.Kind() == "ambient_declaration" && decl.NamedChildCount() > 0 {
			decl = decl.NamedChild(0)
		}
		members = append(members, describeNested(decl, source)...)
	}

	return &Declaration{
		Name:      name,
		Kind:      KindNamespace,
		Signature: fmt.Sprintf("namespace %s { %d members }", name, len(members)),
		Members:   members,
	}
}

// describeNested renders "kind name" lines for a declaration nested in a
// namespace body.
func describeNested(decl *sitter.Node, source []byte) []string {
	label, ok := kindLabelFor(decl.Kind())
	if !ok {
		return nil
	}
	if label == string(KindVariable) {
		var lines []string
		for _, declarator := range findChildrenByKind(decl, "variable_declarator") {
			if nameNode := declarator.ChildByFieldName("name"); nameNode != nil {
				lines = append(lines, label+" "+nodeText(nameNode, source))
			}
		}
		return lines
	}
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return []string{label + " " + nodeText(nameNode, source)}
}

// kindLabelFor maps a syntax node kind to the declaration kind label used in
// namespace member listings.
func kindLabelFor(nodeKind string) (string, bool) {
	switch nodeKind {
	case "interface_declaration":
		return string(KindInterface), true
	case "type_alias_declaration":
		return string(KindType), true
	case "enum_declaration":
		return string(KindEnum), true
	case "function_declaration", "generator_function_declaration":
		return string(KindFunction), true
	case "class_declaration", "abstract_class_declaration":
		return string(KindClass), true
	case "lexical_declaration", "variable_declaration":
		return string(KindVariable), true
	case "internal_module", "module":
		return string(KindNamespace), true
	}
	return "", false
}

// extractReExport handles export statements without a declaration: both the
// namespace form (export * from "x") and named clauses (export { a, b as c }).
// A clause with neither shape yields no record.
func (e *Extractor) extractReExport(export *sitter.Node, source []byte) *Declaration {
	var src string
	if srcNode := export.ChildByFieldName("source"); srcNode != nil {
		src = strings.Trim(nodeText(srcNode, source), `"'`)
	}

	if ns := findChildByKind(export, "namespace_export"); ns != nil || hasChildOfKind(export, "*") {
		if src == "" {
			return nil
		}
		star := "*"
		if ns != nil {
			star = collapseWhitespace(nodeText(ns, source))
		}
		return &Declaration{
			Name:           fmt.Sprintf("%s from %q", star, src),
			Kind:           KindReExport,
			Signature:      fmt.Sprintf("export %s from %q", star, src),
			Members:        []string{},
			ReExportSource: src,
			LineNumber:     lineOf(export),
			Docs:           e.docs(export, source),
		}
	}

	clause := findChildByKind(export, "export_clause")
	if clause == nil {
		return nil
	}
	var members []string
	for _, spec := range namedChildren(clause) {
		if spec.Kind() != "export_specifier" {
			continue
		}
		entry := nodeText(spec.ChildByFieldName("name"), source)
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			entry += " as " + nodeText(alias, source)
		}
		members = append(members, entry)
	}
	if len(members) == 0 {
		return nil
	}

	name := "{ " + strings.Join(members, ", ") + " }"
	sig := "export " + name
	if src != "" {
		name = fmt.Sprintf("%s from %q", name, src)
		sig = fmt.Sprintf("%s from %q", sig, src)
	}
	return &Declaration{
		Name:           name,
		Kind:           KindReExport,
		Signature:      sig,
		Members:        members,
		ReExportSource: src,
		LineNumber:     lineOf(export),
		Docs:           e.docs(export, source),
	}
}

// collapseWhitespace folds whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
