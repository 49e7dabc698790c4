package core

import "fmt"

// Builder assembles a Dashboard fluently, accumulating structural errors
// and reporting them all at Build time. Chained calls never panic.
type Builder struct {
	d    Dashboard
	errs []error
}

// NewBuilder starts a dashboard definition with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{d: Dashboard{Name: name}}
}

// ModelID sets the vendor model the dashboard queries against.
func (b *Builder) ModelID(id string) *Builder {
	b.d.ModelID = id
	return b
}

// Description sets the dashboard description.
func (b *Builder) Description(s string) *Builder {
	b.d.Description = s
	return b
}

// Folder sets the destination folder id.
func (b *Builder) Folder(id string) *Builder {
	b.d.FolderID = id
	return b
}

// RefreshInterval sets the scheduled refresh interval (vendor syntax).
func (b *Builder) RefreshInterval(interval string) *Builder {
	b.d.RefreshInterval = interval
	return b
}

// Theme sets the dashboard theme.
func (b *Builder) Theme(theme string) *Builder {
	b.d.Theme = theme
	return b
}

// Labels appends organizational labels.
func (b *Builder) Labels(labels ...string) *Builder {
	b.d.Labels = append(b.d.Labels, labels...)
	return b
}

// Meta sets a custom metadata entry.
func (b *Builder) Meta(key string, value any) *Builder {
	if b.d.Meta == nil {
		b.d.Meta = map[string]any{}
	}
	b.d.Meta[key] = value
	return b
}

// Filter adds a dashboard-level filter control.
func (b *Builder) Filter(f DashboardFilter) *Builder {
	if f.Field == "" {
		b.errs = append(b.errs, &StructuralError{Field: "filter.field", Message: "dashboard filter requires a field"})
		return b
	}
	if !f.Type.Valid() {
		b.errs = append(b.errs, &StructuralError{Field: "filter.type", Message: fmt.Sprintf("unknown filter type %q", f.Type)})
		return b
	}
	b.d.Filters = append(b.d.Filters, f)
	return b
}

// Tile adds a query-backed tile. The tile's vis config is normalized and
// its structural invariants (chart type, non-empty fields, table, position
// bounds) are checked here so a bad tile fails the build, not a later
// serialization.
func (b *Builder) Tile(t Tile) *Builder {
	t.VisConfig.Normalize()
	if t.Name == "" {
		b.errs = append(b.errs, &StructuralError{Field: "tile.name", Message: "tile requires a name"})
	}
	if !t.ChartType.Valid() {
		b.errs = append(b.errs, &StructuralError{Field: "tile.chart_type", Message: fmt.Sprintf("tile %q: unknown chart type %q", t.Name, t.ChartType)})
	}
	if !t.Size.Valid() {
		b.errs = append(b.errs, &StructuralError{Field: "tile.size", Message: fmt.Sprintf("tile %q: unknown size %q", t.Name, t.Size)})
	}
	if t.Query.Table == "" {
		b.errs = append(b.errs, &StructuralError{Field: "tile.query.table", Message: fmt.Sprintf("tile %q: query requires a table", t.Name)})
	}
	if len(t.Query.Fields) == 0 {
		b.errs = append(b.errs, &StructuralError{Field: "tile.query.fields", Message: fmt.Sprintf("tile %q: query requires at least one field", t.Name)})
	}
	if t.Position != nil {
		if err := t.Position.Validate(); err != nil {
			b.errs = append(b.errs, fmt.Errorf("tile %q: %w", t.Name, err))
		}
	}
	if t.Query.Limit == 0 {
		t.Query.Limit = DefaultLimit
	}
	b.d.Tiles = append(b.d.Tiles, t)
	return b
}

// TextTile adds a markdown content tile.
func (b *Builder) TextTile(content string, size TileSize) *Builder {
	b.d.TextTiles = append(b.d.TextTiles, TextTile{Content: content, Size: size})
	return b
}

// TargetFilters restricts which dashboard filters apply to a tile.
func (b *Builder) TargetFilters(tileName string, filterFields ...string) *Builder {
	if b.d.TileFilterMap == nil {
		b.d.TileFilterMap = map[string][]string{}
	}
	b.d.TileFilterMap[tileName] = append(b.d.TileFilterMap[tileName], filterFields...)
	return b
}

// Build returns the assembled dashboard, or the first accumulated
// structural error. The dashboard must have a name and at least one tile.
func (b *Builder) Build() (*Dashboard, error) {
	if b.d.Name == "" {
		b.errs = append([]error{&StructuralError{Field: "name", Message: "dashboard requires a name"}}, b.errs...)
	}
	if b.d.TileCount() == 0 {
		b.errs = append(b.errs, &StructuralError{Field: "tiles", Message: "dashboard requires at least one tile"})
	}
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	d := b.d
	return &d, nil
}
