package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// kindValues renders the closed kind set for tool descriptions.
const kindValues = "interface, type, enum, function, class, variable, namespace, re-export"

// registerTools wires every query tool into the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool(
		"search_type",
		mcp.WithDescription("Look up an exported TypeScript declaration by name. Prefers an exact case-insensitive match, falls back to the first substring match."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Declaration name to look up (e.g., 'MessageSocket', 'MessageKey')")),
	), s.handleSearchType)

	s.mcp.AddTool(mcp.NewTool(
		"fuzzy_search",
		mcp.WithDescription("Relevance-ranked search across declaration names and documentation. Exact matches rank above prefix matches, which rank above substring matches; query tokens found in names or docs add to the score."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query; whitespace-separated tokens are scored independently")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 20)")),
	), s.handleFuzzySearch)

	s.mcp.AddTool(mcp.NewTool(
		"get_types_from_module",
		mcp.WithDescription("List every exported declaration of one module (the top-level directory grouping under the source root)."),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module name (e.g., 'Types', 'Utils', or 'root' for files directly under the source root)")),
	), s.handleTypesFromModule)

	s.mcp.AddTool(mcp.NewTool(
		"get_types_by_kind",
		mcp.WithDescription("List every declaration of one kind. Valid kinds: "+kindValues+"."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Declaration kind, one of: "+kindValues)),
	), s.handleTypesByKind)

	s.mcp.AddTool(mcp.NewTool(
		"get_type_hierarchy",
		mcp.WithDescription("Show the extends/implements relationships of a declaration: its raw supertype references and the declarations that reference it. Matching is textual, so generic instantiations appear verbatim."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Declaration name (exact, case-insensitive)")),
	), s.handleTypeHierarchy)

	s.mcp.AddTool(mcp.NewTool(
		"get_statistics",
		mcp.WithDescription("Corpus statistics: total declaration count, counts per kind, a per-module breakdown, and the first declarations of each major kind in index order."),
	), s.handleStatistics)

	s.mcp.AddTool(mcp.NewTool(
		"analyze_dependencies",
		mcp.WithDescription("Per-module dependency surface: every declaration name a module exports and every module specifier it re-exports from."),
	), s.handleDependencies)

	s.mcp.AddTool(mcp.NewTool(
		"list_all_types",
		mcp.WithDescription("Dump the full declaration index. The corpus is cached after the first extraction pass."),
	), s.handleListAllTypes)

	s.mcp.AddTool(mcp.NewTool(
		"list_modules",
		mcp.WithDescription("List the distinct modules of the source tree with per-kind declaration counts, sorted by size."),
	), s.handleListModules)

	s.mcp.AddTool(mcp.NewTool(
		"refresh_index",
		mcp.WithDescription("Run a fresh extraction pass over the source tree and atomically replace the cached index. In-flight queries keep seeing the previous complete index until the swap."),
	), s.handleRefreshIndex)
}

func (s *Server) handleSearchType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	start := time.Now()
	decl, err := s.engine.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	s.logTool("search_type", start)

	return jsonResult(&SearchTypeResponse{Found: decl != nil, Declaration: decl})
}

func (s *Server) handleFuzzySearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := s.cfg.Search.FuzzyLimit
	if f, ok := args["limit"].(float64); ok && int(f) > 0 {
		limit = int(f)
	}

	if payload, ok := s.cache.get(query, limit); ok {
		return mcp.NewToolResultText(payload), nil
	}

	start := time.Now()
	decls, err := s.engine.Fuzzy(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search failed: %w", err)
	}
	s.logTool("fuzzy_search", start)

	payload, err := marshalResponse(&DeclarationListResponse{Total: len(decls), Declarations: decls})
	if err != nil {
		return nil, err
	}
	s.cache.set(query, limit, payload)
	return mcp.NewToolResultText(payload), nil
}

func (s *Server) handleTypesFromModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	module, ok := args["module"].(string)
	if !ok || module == "" {
		return mcp.NewToolResultError("module parameter is required"), nil
	}

	start := time.Now()
	decls, err := s.engine.FromModule(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("module query failed: %w", err)
	}
	s.logTool("get_types_from_module", start)

	return jsonResult(&DeclarationListResponse{Total: len(decls), Declarations: decls})
}

func (s *Server) handleTypesByKind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	kind, ok := args["kind"].(string)
	if !ok || kind == "" {
		return mcp.NewToolResultError("kind parameter is required"), nil
	}

	start := time.Now()
	decls, err := s.engine.ByKind(ctx, strings.TrimSpace(kind))
	if err != nil {
		// An unrecognized kind is a caller contract violation, not a
		// "no results" outcome.
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logTool("get_types_by_kind", start)

	return jsonResult(&DeclarationListResponse{Total: len(decls), Declarations: decls})
}

func (s *Server) handleTypeHierarchy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	start := time.Now()
	hierarchy, err := s.engine.Hierarchy(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("hierarchy query failed: %w", err)
	}
	s.logTool("get_type_hierarchy", start)

	return jsonResult(&HierarchyResponse{Found: hierarchy != nil, Hierarchy: hierarchy})
}

func (s *Server) handleStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	stats, err := s.engine.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics failed: %w", err)
	}
	s.logTool("get_statistics", start)

	return jsonResult(stats)
}

func (s *Server) handleDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	deps, err := s.engine.Dependencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("dependency analysis failed: %w", err)
	}
	s.logTool("analyze_dependencies", start)

	return jsonResult(&DependenciesResponse{Total: len(deps), Modules: deps})
}

func (s *Server) handleListAllTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	decls, err := s.engine.ExtractAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	s.logTool("list_all_types", start)

	return jsonResult(&DeclarationListResponse{Total: len(decls), Declarations: decls})
}

func (s *Server) handleListModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	modules, err := s.engine.Modules(ctx)
	if err != nil {
		return nil, fmt.Errorf("module listing failed: %w", err)
	}
	s.logTool("list_modules", start)

	return jsonResult(&ModulesResponse{Total: len(modules), Modules: modules})
}

func (s *Server) handleRefreshIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	count, err := s.engine.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuild failed: %w", err)
	}
	s.cache.clear()
	s.logTool("refresh_index", start)

	return jsonResult(&RefreshResponse{
		Declarations: count,
		TookMs:       time.Since(start).Milliseconds(),
	})
}

// logTool records one tool invocation with its elapsed time.
func (s *Server) logTool(tool string, start time.Time) {
	s.log.Debug().
		Str("tool", tool).
		Dur("elapsed", time.Since(start)).
		Msg("tool handled")
}

// marshalResponse serializes a tool response payload.
func marshalResponse(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(data), nil
}

// jsonResult wraps a payload as an MCP text result (mcp-go convention).
func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := marshalResponse(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(payload), nil
}
