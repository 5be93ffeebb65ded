package index

import (
	"context"
	"sort"
	"strings"

	"declscope/internal/tsparse"
)

// DefaultFuzzyLimit caps fuzzy search results when the caller does not.
const DefaultFuzzyLimit = 20

// Fuzzy match scoring. The whole-query bonus and the per-token bonuses are
// cumulative and independent of each other.
const (
	scoreExact       = 100
	scorePrefix      = 50
	scoreContains    = 25
	scoreTokenInName = 10
	scoreTokenInDocs = 5
)

// Search finds a declaration by name: an exact case-insensitive match wins,
// otherwise the first entry whose name contains the query as a substring.
// A nil result means nothing matched.
func (e *Engine) Search(ctx context.Context, name string) (*tsparse.Declaration, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	for i := range c.decls {
		if strings.EqualFold(c.decls[i].Name, name) {
			return &c.decls[i], nil
		}
	}
	lower := strings.ToLower(name)
	for i := range c.decls {
		if strings.Contains(strings.ToLower(c.decls[i].Name), lower) {
			return &c.decls[i], nil
		}
	}
	return nil, nil
}

// Fuzzy runs a token-weighted relevance search. Results are sorted by
// descending score with ties keeping index order, then truncated to limit
// (DefaultFuzzyLimit when limit <= 0). Zero-scoring candidates are excluded.
func (e *Engine) Fuzzy(ctx context.Context, query string, limit int) ([]tsparse.Declaration, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultFuzzyLimit
	}

	q := strings.ToLower(query)
	tokens := strings.Fields(q)

	type scored struct {
		decl  *tsparse.Declaration
		score int
	}
	var matches []scored
	for i := range c.decls {
		d := &c.decls[i]
		score := fuzzyScore(d, q, tokens)
		if score > 0 {
			matches = append(matches, scored{decl: d, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]tsparse.Declaration, 0, len(matches))
	for _, m := range matches {
		out = append(out, *m.decl)
	}
	return out, nil
}

// fuzzyScore scores one candidate against a lowercased query and its tokens.
func fuzzyScore(d *tsparse.Declaration, query string, tokens []string) int {
	name := strings.ToLower(d.Name)

	score := 0
	switch {
	case name == query:
		score += scoreExact
	case strings.HasPrefix(name, query):
		score += scorePrefix
	case strings.Contains(name, query):
		score += scoreContains
	}

	docs := strings.ToLower(d.Docs)
	for _, token := range tokens {
		if strings.Contains(name, token) {
			score += scoreTokenInName
		}
		if docs != "" && strings.Contains(docs, token) {
			score += scoreTokenInDocs
		}
	}
	return score
}

// FromModule returns the declarations of a module, matched by
// case-insensitive module equality or by substring of the module name in the
// file path.
func (e *Engine) FromModule(ctx context.Context, module string) ([]tsparse.Declaration, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(module)
	out := []tsparse.Declaration{}
	for i := range c.decls {
		d := &c.decls[i]
		if strings.EqualFold(d.Module, module) || strings.Contains(strings.ToLower(d.File), lower) {
			out = append(out, *d)
		}
	}
	return out, nil
}

// ByKind returns every declaration of one kind. An unrecognized kind value is
// a contract violation and fails loudly rather than returning an empty set.
func (e *Engine) ByKind(ctx context.Context, kind string) ([]tsparse.Declaration, error) {
	k, err := tsparse.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	out := []tsparse.Declaration{}
	for i := range c.decls {
		if c.decls[i].Kind == k {
			out = append(out, c.decls[i])
		}
	}
	return out, nil
}
