package index

import (
	"context"
	"sort"

	"declscope/internal/tsparse"
)

// DependencyInfo aggregates one module's outward surface: every declaration
// name it exports and every module specifier it re-exports from. Import edges
// between modules are not computed here; true import-graph resolution is out
// of scope.
type DependencyInfo struct {
	Module        string   `json:"module"`
	Exports       []string `json:"exports"`
	ReExportsFrom []string `json:"reExportsFrom"`
}

// Dependencies returns one record per module, sorted by module name. Exports
// keep index order; ReExportsFrom is collected only from re-export records
// belonging to the module.
func (e *Engine) Dependencies(ctx context.Context) ([]DependencyInfo, error) {
	c, err := e.ensure(ctx)
	if err != nil {
		return nil, err
	}

	byModule := make(map[string]*DependencyInfo)
	for i := range c.decls {
		d := &c.decls[i]
		info, ok := byModule[d.Module]
		if !ok {
			info = &DependencyInfo{
				Module:        d.Module,
				Exports:       []string{},
				ReExportsFrom: []string{},
			}
			byModule[d.Module] = info
		}
		info.Exports = append(info.Exports, d.Name)
		if d.Kind == tsparse.KindReExport && d.ReExportSource != "" {
			info.ReExportsFrom = append(info.ReExportsFrom, d.ReExportSource)
		}
	}

	out := make([]DependencyInfo, 0, len(byModule))
	for _, info := range byModule {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
	return out, nil
}
