package core

import "fmt"

// GridColumns is the width of the dashboard grid. All tile rectangles
// must fit within it; rows are unbounded.
const GridColumns = 12

// Position is a tile's rectangle on the dashboard grid.
// The zero value is not a valid position on its own; construct through
// NewPosition so out-of-bounds rectangles are rejected immediately.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// NewPosition constructs a grid rectangle, failing fast on out-of-bounds
// coordinates rather than deferring to later validation.
func NewPosition(x, y, w, h int) (Position, error) {
	p := Position{X: x, Y: y, W: w, H: h}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// Validate checks the grid invariants: x in [0,11], y >= 0, w in [1,12],
// h >= 1, and x+w <= 12.
func (p Position) Validate() error {
	if p.X < 0 || p.X >= GridColumns {
		return &StructuralError{Field: "position.x", Message: fmt.Sprintf("x must be in [0,%d], got %d", GridColumns-1, p.X)}
	}
	if p.Y < 0 {
		return &StructuralError{Field: "position.y", Message: fmt.Sprintf("y must be >= 0, got %d", p.Y)}
	}
	if p.W < 1 || p.W > GridColumns {
		return &StructuralError{Field: "position.w", Message: fmt.Sprintf("w must be in [1,%d], got %d", GridColumns, p.W)}
	}
	if p.H < 1 {
		return &StructuralError{Field: "position.h", Message: fmt.Sprintf("h must be >= 1, got %d", p.H)}
	}
	if p.X+p.W > GridColumns {
		return &StructuralError{Field: "position", Message: fmt.Sprintf("tile extends past column %d (x=%d w=%d)", GridColumns, p.X, p.W)}
	}
	return nil
}

// Overlaps reports whether two rectangles share any grid cell.
func (p Position) Overlaps(o Position) bool {
	return p.X < o.X+o.W && o.X < p.X+p.W &&
		p.Y < o.Y+o.H && o.Y < p.Y+p.H
}
