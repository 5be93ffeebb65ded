package index

import (
	"context"
	"strings"

	"github.com/dominikbraun/graph"

	"declscope/internal/tsparse"
)

// Hierarchy is the result of a type hierarchy query. Parents are the raw
// extends/implements references of the declaration; Children are the names of
// declarations that reference it.
type Hierarchy struct {
	Declaration tsparse.Declaration `json:"declaration"`
	Parents     []string            `json:"parents"`
	Children    []string            `json:"children"`
}

// hierarchyGraph holds the directed supertype graph inferred from textual
// extends/implements references. The inference is a substring containment
// check against the raw reference text, not a type-level resolution: a parent
// entry may be a generic instantiation string, and names that happen to be
// substrings of unrelated references produce false positives. That behavior
// is deliberate and kept for compatibility.
type hierarchyGraph struct {
	g graph.Graph[string, string]
}

// buildHierarchy builds the supertype graph over a freshly extracted corpus.
// For every declaration whose extends/implements text contains another
// declaration's name, an edge parent -> child is added.
func buildHierarchy(decls []tsparse.Declaration) *hierarchyGraph {
	g := graph.New(graph.StringHash, graph.Directed())

	for i := range decls {
		_ = g.AddVertex(decls[i].Name)
	}

	for i := range decls {
		child := &decls[i]
		refs := child.ParentRefs()
		if len(refs) == 0 {
			continue
		}
		for j := range decls {
			parent := &decls[j]
			if i == j || parent.Name == child.Name {
				continue
			}
			for _, ref := range refs {
				if strings.Contains(ref, parent.Name) {
					_ = g.AddEdge(parent.Name, child.Name)
					break
				}
			}
		}
	}

	return &hierarchyGraph{g: g}
}

// hasEdge reports whether the graph contains a parent -> child edge.
func (h *hierarchyGraph) hasEdge(parent, child string) bool {
	_, err := h.g.Edge(parent, child)
	return err == nil
}

// Hierarchy resolves a declaration by exact case-insensitive name match and
// returns its inferred parents and children. A nil result means no
// declaration matched; that is a normal outcome, not an error.
func (e *Engine) Hierarchy(ctx context.Context, name string) (*Hierarchy, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	var target *tsparse.Declaration
	for i := range c.decls {
		if strings.EqualFold(c.decls[i].Name, name) {
			target = &c.decls[i]
			break
		}
	}
	if target == nil {
		return nil, nil
	}

	result := &Hierarchy{
		Declaration: *target,
		Parents:     append([]string{}, target.ParentRefs()...),
		Children:    []string{},
	}
	for i := range c.decls {
		d := &c.decls[i]
		if d == target {
			continue
		}
		if c.hier.hasEdge(target.Name, d.Name) {
			result.Children = append(result.Children, d.Name)
		}
	}
	return result, nil
}
