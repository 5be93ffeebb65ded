// Package walker enumerates the candidate TypeScript source files under a
// source root.
package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Directories never worth descending into, independent of configuration.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Walker collects source files under a root, excluding declaration-only
// files, test directories and configured ignore globs.
type Walker struct {
	root    string
	ignores []glob.Glob
}

// New creates a walker for root. Ignore patterns use glob syntax with "/" as
// the separator and are matched against root-relative paths.
func New(root string, ignorePatterns []string) (*Walker, error) {
	ignores := make([]glob.Glob, 0, len(ignorePatterns))
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		ignores = append(ignores, g)
	}
	return &Walker{root: root, ignores: ignores}, nil
}

// Collect returns the deduplicated set of candidate files as root-relative,
// forward-slash paths in lexical order. No downstream consumer depends on
// cross-file ordering; sorting just keeps runs reproducible.
func (w *Walker) Collect() ([]string, error) {
	seen := make(map[string]bool)

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if w.include(rel) {
			seen[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.root, err)
	}

	files := make([]string, 0, len(seen))
	for rel := range seen {
		files = append(files, rel)
	}
	sort.Strings(files)
	return files, nil
}

// include applies the candidate-file policy to a root-relative path.
func (w *Walker) include(rel string) bool {
	if !strings.HasSuffix(rel, ".ts") {
		return false
	}
	// Declaration-only files have no emitted runtime declarations.
	if strings.HasSuffix(rel, ".d.ts") {
		return false
	}
	if strings.HasSuffix(rel, ".test.ts") || strings.HasSuffix(rel, ".spec.ts") {
		return false
	}
	for _, segment := range strings.Split(rel, "/") {
		switch strings.ToLower(segment) {
		case "tests", "__tests__", "test":
			return false
		}
	}
	for _, g := range w.ignores {
		if g.Match(rel) {
			return false
		}
	}
	return true
}
