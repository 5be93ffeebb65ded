// Package tsparse extracts the exported declaration surface of TypeScript
// source files into uniform, queryable records.
package tsparse

import "fmt"

// Kind identifies the shape of an extracted declaration. The set is closed:
// every declaration in an index carries exactly one of these values, and the
// value determines which optional fields of Declaration are populated.
type Kind string

const (
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindEnum      Kind = "enum"
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindVariable  Kind = "variable"
	KindNamespace Kind = "namespace"
	KindReExport  Kind = "re-export"
)

// Kinds returns all declaration kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{
		KindInterface,
		KindType,
		KindEnum,
		KindFunction,
		KindClass,
		KindVariable,
		KindNamespace,
		KindReExport,
	}
}

// ParseKind validates a kind filter value. An unrecognized value is a
// contract violation on the caller's side and fails loudly.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown declaration kind %q", s)
}

// TypeParameter describes one generic parameter of a declaration.
type TypeParameter struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
	Default    string `json:"default,omitempty"`
}

// PropertyInfo describes one member of an interface or class. Exactly one of
// IsMethod, IsCallSignature and IsIndexSignature may be set; a plain field
// has none of them set.
type PropertyInfo struct {
	Name             string   `json:"name"`
	Type             string   `json:"type,omitempty"`
	Optional         bool     `json:"optional,omitempty"`
	Readonly         bool     `json:"readonly,omitempty"`
	Docs             string   `json:"docs,omitempty"`
	IsMethod         bool     `json:"isMethod,omitempty"`
	IsCallSignature  bool     `json:"isCallSignature,omitempty"`
	IsIndexSignature bool     `json:"isIndexSignature,omitempty"`
	Parameters       []string `json:"parameters,omitempty"`
	ReturnType       string   `json:"returnType,omitempty"`
}

// Declaration is the uniform record produced for every exported declaration.
// Which optional fields are populated depends on Kind: interfaces and classes
// carry Properties/Methods, enums and namespaces and re-exports carry Members,
// variables carry Value, and so on.
type Declaration struct {
	Name           string          `json:"name"`
	Kind           Kind            `json:"kind"`
	File           string          `json:"file"`
	Module         string          `json:"module"`
	Signature      string          `json:"signature"`
	FullSignature  string          `json:"fullSignature,omitempty"`
	Properties     []PropertyInfo  `json:"properties,omitempty"`
	Methods        []PropertyInfo  `json:"methods,omitempty"`
	Members        []string        `json:"members,omitempty"`
	TypeParameters []TypeParameter `json:"typeParameters,omitempty"`
	Extends        []string        `json:"extends,omitempty"`
	Implements     []string        `json:"implements,omitempty"`
	Docs           string          `json:"docs,omitempty"`
	Value          string          `json:"value,omitempty"`
	ReExportSource string          `json:"reExportSource,omitempty"`
	LineNumber     int             `json:"lineNumber,omitempty"`
}

// ParentRefs returns the declaration's extends and implements lists as one
// slice, in that order. The entries are raw supertype text and may be generic
// instantiations rather than bare names.
func (d *Declaration) ParentRefs() []string {
	if len(d.Extends) == 0 && len(d.Implements) == 0 {
		return nil
	}
	refs := make([]string, 0, len(d.Extends)+len(d.Implements))
	refs = append(refs, d.Extends...)
	refs = append(refs, d.Implements...)
	return refs
}
