package index

import (
	"context"
	"sort"

	"declscope/internal/tsparse"
)

// topListLen is how many declarations the per-kind "top" lists carry. The
// lists are index-order truncations, not frequency rankings; that is the
// observable behavior callers depend on.
const topListLen = 10

// TypeSummary identifies one declaration in a statistics listing.
type TypeSummary struct {
	Name string `json:"name"`
	File string `json:"file"`
}

// ModuleStats is the per-module breakdown of a statistics result.
type ModuleStats struct {
	Module string               `json:"module"`
	ByKind map[tsparse.Kind]int `json:"byKind"`
	Total  int                  `json:"total"`
}

// Statistics summarizes the whole corpus. ByKind always carries every kind,
// zero-initialized, so consumers never see a missing key.
type Statistics struct {
	TotalDeclarations int                  `json:"totalDeclarations"`
	ByKind            map[tsparse.Kind]int `json:"byKind"`
	ByModule          []ModuleStats        `json:"byModule"`
	TopInterfaces     []TypeSummary        `json:"topInterfaces"`
	TopTypes          []TypeSummary        `json:"topTypes"`
	TopFunctions      []TypeSummary        `json:"topFunctions"`
}

// Statistics computes corpus-wide counts: totals, per-kind counts, a
// per-module breakdown sorted by descending total, and the top lists for
// interfaces, type aliases and functions.
func (e *Engine) Statistics(ctx context.Context) (*Statistics, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalDeclarations: len(c.decls),
		ByKind:            zeroKindCounts(),
		TopInterfaces:     []TypeSummary{},
		TopTypes:          []TypeSummary{},
		TopFunctions:      []TypeSummary{},
	}

	byModule := make(map[string]*ModuleStats)
	var moduleOrder []string

	for i := range c.decls {
		d := &c.decls[i]
		stats.ByKind[d.Kind]++

		m, ok := byModule[d.Module]
		if !ok {
			m = &ModuleStats{Module: d.Module, ByKind: zeroKindCounts()}
			byModule[d.Module] = m
			moduleOrder = append(moduleOrder, d.Module)
		}
		m.ByKind[d.Kind]++
		m.Total++

		switch d.Kind {
		case tsparse.KindInterface:
			if len(stats.TopInterfaces) < topListLen {
				stats.TopInterfaces = append(stats.TopInterfaces, TypeSummary{Name: d.Name, File: d.File})
			}
		case tsparse.KindType:
			if len(stats.TopTypes) < topListLen {
				stats.TopTypes = append(stats.TopTypes, TypeSummary{Name: d.Name, File: d.File})
			}
		case tsparse.KindFunction:
			if len(stats.TopFunctions) < topListLen {
				stats.TopFunctions = append(stats.TopFunctions, TypeSummary{Name: d.Name, File: d.File})
			}
		}
	}

	stats.ByModule = make([]ModuleStats, 0, len(moduleOrder))
	for _, name := range moduleOrder {
		stats.ByModule = append(stats.ByModule, *byModule[name])
	}
	sort.SliceStable(stats.ByModule, func(i, j int) bool {
		if stats.ByModule[i].Total != stats.ByModule[j].Total {
			return stats.ByModule[i].Total > stats.ByModule[j].Total
		}
		return stats.ByModule[i].Module < stats.ByModule[j].Module
	})

	return stats, nil
}

// Modules returns the distinct module names with their declaration counts,
// sorted by descending count.
func (e *Engine) Modules(ctx context.Context) ([]ModuleStats, error) {
	stats, err := e.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ByModule, nil
}

// zeroKindCounts returns a count map with every kind present at zero.
func zeroKindCounts() map[tsparse.Kind]int {
	counts := make(map[tsparse.Kind]int, len(tsparse.Kinds()))
	for _, k := range tsparse.Kinds() {
		counts[k] = 0
	}
	return counts
}
