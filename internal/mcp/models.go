package mcp

import (
	"declscope/internal/index"
	"declscope/internal/tsparse"
)

// SearchTypeResponse is the payload of the search_type tool. Found is false
// when nothing matched; that is a normal outcome, not a protocol error.
type SearchTypeResponse struct {
	Found       bool                 `json:"found"`
	Declaration *tsparse.Declaration `json:"declaration,omitempty"`
}

// DeclarationListResponse is the payload of every tool returning a list of
// declarations.
type DeclarationListResponse struct {
	Total        int                   `json:"total"`
	Declarations []tsparse.Declaration `json:"declarations"`
}

// HierarchyResponse is the payload of the get_type_hierarchy tool.
type HierarchyResponse struct {
	Found     bool             `json:"found"`
	Hierarchy *index.Hierarchy `json:"hierarchy,omitempty"`
}

// ModulesResponse is the payload of the list_modules tool.
type ModulesResponse struct {
	Total   int                 `json:"total"`
	Modules []index.ModuleStats `json:"modules"`
}

// DependenciesResponse is the payload of the analyze_dependencies tool.
type DependenciesResponse struct {
	Total   int                    `json:"total"`
	Modules []index.DependencyInfo `json:"modules"`
}

// RefreshResponse is the payload of the refresh_index tool.
type RefreshResponse struct {
	Declarations int   `json:"declarations"`
	TookMs       int64 `json:"took_ms"`
}
