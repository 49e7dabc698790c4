package core

import "sort"

// Dashboard is the aggregate root of a dashboard definition. It is built in
// memory (by the builder, a template render, or a deserializer), may have
// positions filled in by the layout engine, and is read-only once handed to
// a serializer.
type Dashboard struct {
	Name            string              `yaml:"name" json:"name"`
	ModelID         string              `yaml:"model_id,omitempty" json:"model_id,omitempty"`
	Description     string              `yaml:"description,omitempty" json:"description,omitempty"`
	Tiles           []Tile              `yaml:"tiles,omitempty" json:"tiles,omitempty"`
	TextTiles       []TextTile          `yaml:"text_tiles,omitempty" json:"text_tiles,omitempty"`
	Filters         []DashboardFilter   `yaml:"filters,omitempty" json:"filters,omitempty"`
	RefreshInterval string              `yaml:"refresh_interval,omitempty" json:"refresh_interval,omitempty"`
	SourceTemplate  string              `yaml:"source_template,omitempty" json:"source_template,omitempty"`
	DBTModel        string              `yaml:"dbt_model,omitempty" json:"dbt_model,omitempty"`
	FolderID        string              `yaml:"folder_id,omitempty" json:"folder_id,omitempty"`
	Labels          []string            `yaml:"labels,omitempty" json:"labels,omitempty"`
	Meta            map[string]any      `yaml:"meta,omitempty" json:"meta,omitempty"`
	TileFilterMap   map[string][]string `yaml:"tile_filter_map,omitempty" json:"tile_filter_map,omitempty"`
	Theme           string              `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// TileCount returns the number of tiles including text tiles.
func (d *Dashboard) TileCount() int {
	return len(d.Tiles) + len(d.TextTiles)
}

// TileByName returns the first tile with the given name, or nil.
func (d *Dashboard) TileByName(name string) *Tile {
	for i := range d.Tiles {
		if d.Tiles[i].Name == name {
			return &d.Tiles[i]
		}
	}
	return nil
}

// ReferencedFields returns the sorted set of qualified fields referenced by
// any tile query (fields, sorts, filters, pivots).
func (d *Dashboard) ReferencedFields() []string {
	set := map[string]bool{}
	for i := range d.Tiles {
		q := &d.Tiles[i].Query
		for _, f := range q.Fields {
			set[f] = true
		}
		for _, s := range q.Sorts {
			set[s.Column] = true
		}
		for _, f := range q.Filters {
			set[f.Field] = true
		}
		for _, cf := range q.CompositeFilters {
			for _, f := range cf.Filters {
				set[f.Field] = true
			}
		}
		for _, p := range q.Pivots {
			set[p] = true
		}
	}
	return sortedKeys(set)
}

// ReferencedTables returns the sorted set of distinct tables queried.
func (d *Dashboard) ReferencedTables() []string {
	set := map[string]bool{}
	for i := range d.Tiles {
		if t := d.Tiles[i].Query.Table; t != "" {
			set[t] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
