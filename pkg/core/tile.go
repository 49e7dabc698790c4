package core

// TileSize is a named width preset. When set, it beats the chart-type
// default width during auto-layout; the default height still applies.
type TileSize string

// Tile size constants.
const (
	SizeUnset     TileSize = ""
	SizeFull      TileSize = "full"
	SizeHalf      TileSize = "half"
	SizeThird     TileSize = "third"
	SizeQuarter   TileSize = "quarter"
	SizeTwoThirds TileSize = "two_thirds"
)

// Columns returns the grid width for a size preset, or 0 when unset.
func (s TileSize) Columns() int {
	switch s {
	case SizeFull:
		return GridColumns
	case SizeHalf:
		return 6
	case SizeThird:
		return 4
	case SizeQuarter:
		return 3
	case SizeTwoThirds:
		return 8
	default:
		return 0
	}
}

// Valid reports whether s is a known size preset (or unset).
func (s TileSize) Valid() bool {
	switch s {
	case SizeUnset, SizeFull, SizeHalf, SizeThird, SizeQuarter, SizeTwoThirds:
		return true
	}
	return false
}

// Tile is one visual element on a dashboard backed by a query.
type Tile struct {
	Name        string    `yaml:"name" json:"name"`
	Subtitle    string    `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Query       Query     `yaml:"query" json:"query"`
	ChartType   ChartType `yaml:"chart_type" json:"chart_type"`
	VisConfig   VisConfig `yaml:"vis_config,omitempty" json:"vis_config,omitempty"`
	Position    *Position `yaml:"position,omitempty" json:"position,omitempty"`
	Size        TileSize  `yaml:"size,omitempty" json:"size,omitempty"`
	Hidden      bool      `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// TextTile is a pure-content tile with no query behind it.
type TextTile struct {
	Content  string    `yaml:"content" json:"content"`
	Position *Position `yaml:"position,omitempty" json:"position,omitempty"`
	Size     TileSize  `yaml:"size,omitempty" json:"size,omitempty"`
}
