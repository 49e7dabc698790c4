// Package layout assigns grid positions to tiles that lack one.
//
// Placement is a deterministic first-fit scan: rows top to bottom, columns
// left to right, strictly in tile input order. There is no best-fit
// heuristic; reproducible placement matters more than space-optimal packing
// because rendered documents are diffed in version control.
package layout

import (
	"github.com/leapstack-labs/leapboard/pkg/core"
)

// dims is a tile's target width and height in grid cells.
type dims struct {
	w, h int
}

// chartDefaults maps each chart type to its default footprint when the tile
// sets neither an explicit position nor a size preset.
var chartDefaults = map[core.ChartType]dims{
	core.ChartLine:        {6, 4},
	core.ChartBar:         {6, 4},
	core.ChartArea:        {6, 4},
	core.ChartScatter:     {6, 4},
	core.ChartPie:         {4, 4},
	core.ChartDonut:       {4, 4},
	core.ChartTable:       {12, 6},
	core.ChartNumber:      {3, 2},
	core.ChartFunnel:      {6, 4},
	core.ChartHeatmap:     {6, 4},
	core.ChartStackedBar:  {6, 4},
	core.ChartStackedArea: {6, 4},
	core.ChartGroupedBar:  {6, 4},
	core.ChartCombo:       {6, 4},
	core.ChartPivotTable:  {12, 6},
	core.ChartText:        {12, 2},
	core.ChartVegaLite:    {6, 4},
}

// fallbackDims is used for any chart type missing from the defaults table.
var fallbackDims = dims{6, 4}

// textTileDims is the footprint of a text tile without a size preset.
var textTileDims = dims{12, 2}

// tileDims resolves a tile's target footprint. An explicit size preset
// beats the chart-type default width; the default height still applies.
func tileDims(t *core.Tile) dims {
	d, ok := chartDefaults[t.ChartType]
	if !ok {
		d = fallbackDims
	}
	if w := t.Size.Columns(); w > 0 {
		d.w = w
	}
	return d
}

// grid tracks occupied cells on a 12-column, unbounded-row canvas.
type grid struct {
	cells map[[2]int]bool
	maxY  int // first row past the lowest occupied cell
}

func newGrid() *grid {
	return &grid{cells: map[[2]int]bool{}}
}

// occupy marks a rectangle's cells as taken.
func (g *grid) occupy(p core.Position) {
	for y := p.Y; y < p.Y+p.H; y++ {
		for x := p.X; x < p.X+p.W; x++ {
			g.cells[[2]int{x, y}] = true
		}
	}
	if p.Y+p.H > g.maxY {
		g.maxY = p.Y + p.H
	}
}

// fits reports whether a w×h rectangle at (x,y) is fully unoccupied.
func (g *grid) fits(x, y, w, h int) bool {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if g.cells[[2]int{xx, yy}] {
				return false
			}
		}
	}
	return true
}

// place finds the first free w×h rectangle in scan order and occupies it.
// The search bound is generously past the lowest occupied row, so an empty
// row is always reachable and placement cannot fail; if the window is
// somehow exhausted the tile lands on the first fully empty row.
func (g *grid) place(w, h int) core.Position {
	if w > core.GridColumns {
		w = core.GridColumns
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	bound := g.maxY + h + 1
	for y := 0; y <= bound; y++ {
		for x := 0; x+w <= core.GridColumns; x++ {
			if g.fits(x, y, w, h) {
				p := core.Position{X: x, Y: y, W: w, H: h}
				g.occupy(p)
				return p
			}
		}
	}
	p := core.Position{X: 0, Y: g.maxY, W: w, H: h}
	g.occupy(p)
	return p
}

// AutoPosition returns a copy of tiles where every tile has a position.
// Pre-positioned tiles are left where they are but still block the cells
// they cover, so later tiles flow around them. Input order is the only
// tie-break.
func AutoPosition(tiles []core.Tile) []core.Tile {
	out := make([]core.Tile, len(tiles))
	copy(out, tiles)

	g := newGrid()
	for i := range out {
		if out[i].Position != nil {
			g.occupy(*out[i].Position)
		}
	}
	for i := range out {
		if out[i].Position != nil {
			continue
		}
		d := tileDims(&out[i])
		p := g.place(d.w, d.h)
		out[i].Position = &p
	}
	return out
}

// AutoPositionDashboard fills positions on a dashboard's tiles and text
// tiles in place, tiles first, then text tiles in input order.
func AutoPositionDashboard(d *core.Dashboard) {
	d.Tiles = AutoPosition(d.Tiles)

	g := newGrid()
	for i := range d.Tiles {
		g.occupy(*d.Tiles[i].Position)
	}
	for i := range d.TextTiles {
		if d.TextTiles[i].Position != nil {
			g.occupy(*d.TextTiles[i].Position)
		}
	}
	for i := range d.TextTiles {
		if d.TextTiles[i].Position != nil {
			continue
		}
		dm := textTileDims
		if w := d.TextTiles[i].Size.Columns(); w > 0 {
			dm.w = w
		}
		p := g.place(dm.w, dm.h)
		d.TextTiles[i].Position = &p
	}
}
