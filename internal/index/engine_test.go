package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"declscope/internal/tsparse"
)

var fixtureRoot = filepath.Join("..", "..", "testdata", "code", "typescript")

func newFixtureEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(fixtureRoot, opts...)
}

func TestExtractAllCachesCorpus(t *testing.T) {
	t.Parallel()

	var parsed int
	e := newFixtureEngine(t, WithProgress(func(done, total int) { parsed++ }))

	first, err := e.ExtractAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.Equal(t, 4, parsed)

	second, err := e.ExtractAll(context.Background())
	require.NoError(t, err)

	// Same corpus, not a rescan: the backing array is shared and the
	// progress callback never fires again.
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, 4, parsed)
}

func TestRebuildSwapsCorpus(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)

	before, err := e.ExtractAll(context.Background())
	require.NoError(t, err)

	count, err := e.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(before), count)

	after, err := e.ExtractAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NotSame(t, &before[0], &after[0])
}

func TestExtractAllModuleDerivation(t *testing.T) {
	t.Parallel()

	decls, err := newFixtureEngine(t).ExtractAll(context.Background())
	require.NoError(t, err)

	modules := map[string]bool{}
	for _, d := range decls {
		modules[d.Module] = true
	}
	assert.Equal(t, map[string]bool{
		"Socket": true,
		"Types":  true,
		"Utils":  true,
		"root":   true,
	}, modules)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)
	ctx := context.Background()

	exact, err := e.Search(ctx, "messagekey")
	require.NoError(t, err)
	require.NotNil(t, exact)
	assert.Equal(t, "MessageKey", exact.Name)

	// No exact match: first substring hit wins.
	sub, err := e.Search(ctx, "ocketConfi")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "SocketConfig", sub.Name)

	none, err := e.Search(ctx, "DoesNotExist")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFuzzyRanking(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	source := `export interface Foo {
    id: string
}

export interface FooBar {
    id: string
}

export interface MyFooImpl {
    id: string
}

export interface Baz {
    id: string
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "shapes.ts"), []byte(source), 0o644))

	e := New(root)
	results, err := e.Fuzzy(context.Background(), "foo", 0)
	require.NoError(t, err)

	// Exact beats prefix beats substring; zero-scoring names are excluded.
	require.Len(t, results, 3)
	assert.Equal(t, "Foo", results[0].Name)
	assert.Equal(t, "FooBar", results[1].Name)
	assert.Equal(t, "MyFooImpl", results[2].Name)

	capped, err := e.Fuzzy(context.Background(), "foo", 2)
	require.NoError(t, err)
	require.Len(t, capped, 2)
	assert.Equal(t, "Foo", capped[0].Name)
}

func TestFuzzyScoresDocsTokens(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)

	results, err := e.Fuzzy(context.Background(), "message", 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	// Only "Message" matches the whole query exactly.
	assert.Equal(t, "Message", results[0].Name)

	// "delivery" never appears in a name but does in docs.
	docHits, err := e.Fuzzy(context.Background(), "delivery", 0)
	require.NoError(t, err)
	names := declNames(docHits)
	assert.Contains(t, names, "MessageStatus")
}

func TestFromModule(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)
	ctx := context.Background()

	types, err := e.FromModule(ctx, "types")
	require.NoError(t, err)
	assert.Len(t, types, 7)

	root, err := e.FromModule(ctx, "root")
	require.NoError(t, err)
	assert.Len(t, root, 2)

	none, err := e.FromModule(ctx, "nonexistent")
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestByKind(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)
	ctx := context.Background()

	enums, err := e.ByKind(ctx, "enum")
	require.NoError(t, err)
	require.Len(t, enums, 1)
	assert.Equal(t, "MessageStatus", enums[0].Name)

	reExports, err := e.ByKind(ctx, "re-export")
	require.NoError(t, err)
	assert.Len(t, reExports, 2)

	_, err = e.ByKind(ctx, "widget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget")
}

func TestHierarchy(t *testing.T) {
	t.Parallel()

	e := newFixtureEngine(t)
	ctx := context.Background()

	key, err := e.Hierarchy(ctx, "MessageKey")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Empty(t, key.Parents)
	assert.Equal(t, []string{"Message"}, key.Children)

	// The relation is symmetric: the child names the parent as a raw ref.
	msg, err := e.Hierarchy(ctx, "message")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "Message", msg.Declaration.Name)
	assert.Equal(t, []string{"MessageKey"}, msg.Parents)

	cfg, err := e.Hierarchy(ctx, "SocketConfig")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"MessageSocket"}, cfg.Children)

	socket, err := e.Hierarchy(ctx, "MessageSocket")
	require.NoError(t, err)
	require.NotNil(t, socket)
	assert.Equal(t, []string{"EventEmitter", "SocketConfig"}, socket.Parents)

	missing, err := e.Hierarchy(ctx, "EventEmitter")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	stats, err := newFixtureEngine(t).Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 19, stats.TotalDeclarations)
	assert.Equal(t, map[tsparse.Kind]int{
		tsparse.KindInterface: 6,
		tsparse.KindType:      2,
		tsparse.KindEnum:      1,
		tsparse.KindFunction:  2,
		tsparse.KindClass:     1,
		tsparse.KindVariable:  4,
		tsparse.KindNamespace: 1,
		tsparse.KindReExport:  2,
	}, stats.ByKind)

	kindSum := 0
	for _, n := range stats.ByKind {
		kindSum += n
	}
	assert.Equal(t, stats.TotalDeclarations, kindSum)

	// Sorted by descending total, module name breaking ties.
	require.Len(t, stats.ByModule, 4)
	moduleSum := 0
	for _, m := range stats.ByModule {
		moduleSum += m.Total
	}
	assert.Equal(t, stats.TotalDeclarations, moduleSum)
	assert.Equal(t, "Utils", stats.ByModule[0].Module)
	assert.Equal(t, 8, stats.ByModule[0].Total)
	assert.Equal(t, "Types", stats.ByModule[1].Module)
	assert.Equal(t, "Socket", stats.ByModule[2].Module)
	assert.Equal(t, "root", stats.ByModule[3].Module)

	// Top lists keep index order.
	assert.Equal(t, "SocketConfig", stats.TopInterfaces[0].Name)
	assert.Len(t, stats.TopInterfaces, 6)
	assert.Equal(t, []string{"JidType", "MessageContent"}, summaryNames(stats.TopTypes))
	assert.Equal(t, []string{"generateMessageID", "delay"}, summaryNames(stats.TopFunctions))
}

func TestStatisticsEmptyCorpus(t *testing.T) {
	t.Parallel()

	stats, err := New(t.TempDir()).Statistics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalDeclarations)
	assert.Len(t, stats.ByKind, len(tsparse.Kinds()))
	for kind, n := range stats.ByKind {
		assert.Zero(t, n, "kind %s", kind)
	}
	assert.Empty(t, stats.ByModule)
	assert.NotNil(t, stats.TopInterfaces)
}

func TestModules(t *testing.T) {
	t.Parallel()

	modules, err := newFixtureEngine(t).Modules(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 4)
	assert.Equal(t, "Utils", modules[0].Module)
}

func TestDependencies(t *testing.T) {
	t.Parallel()

	deps, err := newFixtureEngine(t).Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 4)

	byModule := map[string]DependencyInfo{}
	var order []string
	for _, d := range deps {
		byModule[d.Module] = d
		order = append(order, d.Module)
	}
	assert.Equal(t, []string{"Socket", "Types", "Utils", "root"}, order)

	root := byModule["root"]
	assert.Equal(t, []string{"./Types/Message", "./Utils/helpers"}, root.ReExportsFrom)
	assert.Equal(t, []string{
		`* from "./Types/Message"`,
		`{ generateMessageID, delay as wait } from "./Utils/helpers"`,
	}, root.Exports)

	types := byModule["Types"]
	assert.Len(t, types.Exports, 7)
	assert.Empty(t, types.ReExportsFrom)
}

func TestBuildSkipsUnparseableFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "good.ts"), []byte("export const ok = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.ts"), []byte("export interface {{{"), 0o644))

	decls, err := New(root).ExtractAll(context.Background())
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "ok", decls[0].Name)
}

func declNames(decls []tsparse.Declaration) []string {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}

func summaryNames(summaries []TypeSummary) []string {
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Name)
	}
	return names
}
