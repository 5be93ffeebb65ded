package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("export const x = 1\n"), 0o644))
}

func TestCollect(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{
		"index.ts",
		"Types/Message.ts",
		"Types/global.d.ts",
		"Socket/client.test.ts",
		"Socket/client.spec.ts",
		"Tests/smoke.ts",
		"__tests__/unit.ts",
		"node_modules/pkg/lib.ts",
		"dist/bundle.ts",
		"README.md",
	} {
		writeFile(t, root, rel)
	}

	w, err := New(root, []string{"dist/**"})
	require.NoError(t, err)

	files, err := w.Collect()
	require.NoError(t, err)
	assert.Equal(t, []string{"Types/Message.ts", "index.ts"}, files)
}

func TestCollectEmptyRoot(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	files, err := w.Collect()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectMissingRoot(t *testing.T) {
	t.Parallel()

	w, err := New(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)

	_, err = w.Collect()
	assert.Error(t, err)
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestIncludePolicy(t *testing.T) {
	t.Parallel()

	w, err := New(".", []string{"vendor/**"})
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{"a.ts", true},
		{"Deep/Nested/a.ts", true},
		{"a.tsx", false},
		{"a.d.ts", false},
		{"a.test.ts", false},
		{"a.spec.ts", false},
		{"Tests/a.ts", false},
		{"test/a.ts", false},
		{"__tests__/a.ts", false},
		{"vendor/a.ts", false},
		{"src/testing/a.ts", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.include(tt.rel), "path %q", tt.rel)
	}
}
