package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declscope/internal/config"
	"declscope/internal/index"
)

var fixtureRoot = filepath.Join("..", "..", "testdata", "code", "typescript")

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Source.Root = fixtureRoot

	s, err := NewServer(cfg, index.New(cfg.Source.Root), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func callReq(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), into))
}

func TestNewServerRequiresEngine(t *testing.T) {
	t.Parallel()

	_, err := NewServer(config.Default(), nil, zerolog.Nop())
	assert.ErrorContains(t, err, "index engine is required")
}

func TestHandleSearchType(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleSearchType(context.Background(), callReq(map[string]interface{}{
		"name": "MessageKey",
	}))
	require.NoError(t, err)

	var resp SearchTypeResponse
	decodeResult(t, result, &resp)
	assert.True(t, resp.Found)
	require.NotNil(t, resp.Declaration)
	assert.Equal(t, "MessageKey", resp.Declaration.Name)
}

func TestHandleSearchTypeNotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleSearchType(context.Background(), callReq(map[string]interface{}{
		"name": "NoSuchThing",
	}))
	require.NoError(t, err)

	var resp SearchTypeResponse
	decodeResult(t, result, &resp)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Declaration)
}

func TestHandleSearchTypeMissingArgument(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleSearchType(context.Background(), callReq(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleFuzzySearch(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleFuzzySearch(context.Background(), callReq(map[string]interface{}{
		"query": "message",
	}))
	require.NoError(t, err)

	var resp DeclarationListResponse
	decodeResult(t, result, &resp)
	require.NotEmpty(t, resp.Declarations)
	assert.Equal(t, "Message", resp.Declarations[0].Name)

	// The serialized response is memoized per query and limit.
	cached, ok := s.cache.get("message", s.cfg.Search.FuzzyLimit)
	require.True(t, ok)
	assert.Equal(t, resultText(t, result), cached)

	again, err := s.handleFuzzySearch(context.Background(), callReq(map[string]interface{}{
		"query": "message",
	}))
	require.NoError(t, err)
	assert.Equal(t, resultText(t, result), resultText(t, again))
}

func TestHandleFuzzySearchLimit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleFuzzySearch(context.Background(), callReq(map[string]interface{}{
		"query": "message",
		"limit": float64(1),
	}))
	require.NoError(t, err)

	var resp DeclarationListResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Declarations, 1)
}

func TestHandleTypesFromModule(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleTypesFromModule(context.Background(), callReq(map[string]interface{}{
		"module": "Types",
	}))
	require.NoError(t, err)

	var resp DeclarationListResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 7, resp.Total)
}

func TestHandleTypesByKind(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleTypesByKind(context.Background(), callReq(map[string]interface{}{
		"kind": "enum",
	}))
	require.NoError(t, err)

	var resp DeclarationListResponse
	decodeResult(t, result, &resp)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "MessageStatus", resp.Declarations[0].Name)
}

func TestHandleTypesByKindInvalid(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleTypesByKind(context.Background(), callReq(map[string]interface{}{
		"kind": "widget",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleTypeHierarchy(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleTypeHierarchy(context.Background(), callReq(map[string]interface{}{
		"name": "MessageKey",
	}))
	require.NoError(t, err)

	var resp HierarchyResponse
	decodeResult(t, result, &resp)
	assert.True(t, resp.Found)
	require.NotNil(t, resp.Hierarchy)
	assert.Contains(t, resp.Hierarchy.Children, "Message")
}

func TestHandleStatistics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleStatistics(context.Background(), callReq(nil))
	require.NoError(t, err)

	var stats index.Statistics
	decodeResult(t, result, &stats)
	assert.Equal(t, 19, stats.TotalDeclarations)
}

func TestHandleDependencies(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleDependencies(context.Background(), callReq(nil))
	require.NoError(t, err)

	var resp DependenciesResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 4, resp.Total)
}

func TestHandleListAllTypes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleListAllTypes(context.Background(), callReq(nil))
	require.NoError(t, err)

	var resp DeclarationListResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 19, resp.Total)
}

func TestHandleListModules(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.handleListModules(context.Background(), callReq(nil))
	require.NoError(t, err)

	var resp ModulesResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 4, resp.Total)
}

func TestHandleRefreshIndexClearsCache(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleFuzzySearch(ctx, callReq(map[string]interface{}{"query": "message"}))
	require.NoError(t, err)
	_, ok := s.cache.get("message", s.cfg.Search.FuzzyLimit)
	require.True(t, ok)

	result, err := s.handleRefreshIndex(ctx, callReq(nil))
	require.NoError(t, err)

	var resp RefreshResponse
	decodeResult(t, result, &resp)
	assert.Equal(t, 19, resp.Declarations)

	_, ok = s.cache.get("message", s.cfg.Search.FuzzyLimit)
	assert.False(t, ok)
}
