package tsparse

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractInterface emits an interface record aggregating declared properties,
// methods, call signatures and index signatures.
func (e *Extractor) extractInterface(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	params := e.extractTypeParameters(node, source)

	var extends []string
	if clause := findChildByKind(node, "extends_type_clause"); clause != nil {
		for _, t := range namedChildren(clause) {
			extends = append(extends, simplifyTypeText(nodeText(t, source)))
		}
	}

	properties, methods := e.extractBodyMembers(node.ChildByFieldName("body"), source, false)

	sig := "interface " + name + renderTypeParams(params)
	if len(extends) > 0 {
		sig += " extends " + strings.Join(extends, ", ")
	}

	return &Declaration{
		Name:           name,
		Kind:           KindInterface,
		Signature:      sig,
		Properties:     properties,
		Methods:        methods,
		TypeParameters: params,
		Extends:        extends,
	}
}

// extractClass emits a class record. Member extraction matches interfaces but
// is restricted to public (or default-public) members; anything carrying a
// non-public modifier is excluded entirely.
func (e *Extractor) extractClass(node *sitter.Node, source []byte) *Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nodeText(nameNode, source)
	params := e.extractTypeParameters(node, source)

	var extends, implements []string
	if heritage := findChildByKind(node, "class_heritage"); heritage != nil {
		if ec := findChildByKind(heritage, "extends_clause"); ec != nil {
			children := namedChildren(ec)
			if len(children) > 0 {
				first, last := children[0], children[len(children)-1]
				extends = append(extends, simplifyTypeText(string(source[first.StartByte():last.EndByte()])))
			}
		}
		if ic := findChildByKind(heritage, "implements_clause"); ic != nil {
			for _, t := range namedChildren(ic) {
				implements = append(implements, simplifyTypeText(nodeText(t, source)))
			}
		}
	}

	properties, methods := e.extractBodyMembers(node.ChildByFieldName("body"), source, true)

	sig := "class " + name + renderTypeParams(params)
	if len(extends) > 0 {
		sig += " extends " + strings.Join(extends, ", ")
	}
	if len(implements) > 0 {
		sig += " implements " + strings.Join(implements, ", ")
	}

	return &Declaration{
		Name:           name,
		Kind:           KindClass,
		Signature:      sig,
		Properties:     properties,
		Methods:        methods,
		TypeParameters: params,
		Extends:        extends,
		Implements:     implements,
	}
}

// extractBodyMembers walks an interface_body or class_body and splits the
// members into field-like entries and methods. With publicOnly set, members
// carrying a private or protected modifier are dropped.
func (e *Extractor) extractBodyMembers(body *sitter.Node, source []byte, publicOnly bool) (properties, methods []PropertyInfo) {
	for _, m := range namedChildren(body) {
		if publicOnly && !isPublicMember(m, source) {
			continue
		}
		switch m.Kind() {
		case "property_signature", "public_field_definition":
			p := PropertyInfo{
				Name:     nodeText(m.ChildByFieldName("name"), source),
				Type:     annotationType(m.ChildByFieldName("type"), source),
				Optional: hasChildOfKind(m, "?"),
				Readonly: hasChildOfKind(m, "readonly"),
				Docs:     e.docs(m, source),
			}
			properties = append(properties, p)

		case "method_signature", "method_definition", "abstract_method_signature":
			nm := nodeText(m.ChildByFieldName("name"), source)
			if nm == "constructor" || strings.HasPrefix(nm, "#") {
				continue
			}
			p := PropertyInfo{
				Name:       nm,
				Optional:   hasChildOfKind(m, "?"),
				Docs:       e.docs(m, source),
				IsMethod:   true,
				Parameters: renderParameters(m.ChildByFieldName("parameters"), source),
				ReturnType: annotationType(m.ChildByFieldName("return_type"), source),
			}
			methods = append(methods, p)

		case "call_signature":
			p := PropertyInfo{
				Name:            "(call)",
				IsCallSignature: true,
				Parameters:      renderParameters(m.ChildByFieldName("parameters"), source),
				ReturnType:      annotationType(m.ChildByFieldName("return_type"), source),
			}
			properties = append(properties, p)

		case "index_signature":
			properties = append(properties, indexSignatureProperty(m, source))
		}
	}
	return properties, methods
}

// isPublicMember reports whether a class member has public (or unspecified,
// i.e. default-public) visibility.
func isPublicMember(member *sitter.Node, source []byte) bool {
	if mod := findChildByKind(member, "accessibility_modifier"); mod != nil {
		if t := nodeText(mod, source); t == "private" || t == "protected" {
			return false
		}
	}
	if nameNode := member.ChildByFieldName("name"); nameNode != nil {
		if strings.HasPrefix(nodeText(nameNode, source), "#") {
			return false
		}
	}
	return true
}

// indexSignatureProperty renders an index signature as a synthetic property
// named after its bracketed key, typed with the value type.
func indexSignatureProperty(node *sitter.Node, source []byte) PropertyInfo {
	p := PropertyInfo{IsIndexSignature: true}

	closing := findChildByKind(node, "]")
	if closing != nil {
		p.Name = collapseWhitespace(string(source[node.StartByte():closing.EndByte()]))
		// The value type is the annotation that follows the closing bracket.
		for _, ta := range findChildrenByKind(node, "type_annotation") {
			if ta.StartByte() >= closing.EndByte() {
				p.Type = annotationType(ta, source)
				break
			}
		}
	} else {
		p.Name = collapseWhitespace(nodeText(node, source))
	}
	return p
}

// renderParameters renders a formal parameter list as "name: type" strings,
// with a "?" suffix on optional parameters.
func renderParameters(params *sitter.Node, source []byte) []string {
	var out []string
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			entry := nodeText(p.ChildByFieldName("pattern"), source)
			if p.Kind() == "optional_parameter" {
				entry += "?"
			}
			if t := annotationType(p.ChildByFieldName("type"), source); t != "" {
				entry += ": " + t
			}
			out = append(out, entry)
		}
	}
	return out
}

// extractTypeParameters collects a declaration's generic parameters with
// their constraints and defaults.
func (e *Extractor) extractTypeParameters(node *sitter.Node, source []byte) []TypeParameter {
	var out []TypeParameter
	for _, tp := range namedChildren(node.ChildByFieldName("type_parameters")) {
		if tp.Kind() != "type_parameter" {
			continue
		}
		param := TypeParameter{Name: nodeText(tp.ChildByFieldName("name"), source)}
		if c := findChildByKind(tp, "constraint"); c != nil && c.NamedChildCount() > 0 {
			param.Constraint = simplifyTypeText(nodeText(c.NamedChild(0), source))
		}
		if d := findChildByKind(tp, "default_type"); d != nil && d.NamedChildCount() > 0 {
			param.Default = simplifyTypeText(nodeText(d.NamedChild(0), source))
		}
		out = append(out, param)
	}
	return out
}

// renderTypeParams renders type parameters for a signature, or "" when there
// are none.
func renderTypeParams(params []TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Constraint != "" {
			s += " extends " + p.Constraint
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		parts = append(parts, s)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
