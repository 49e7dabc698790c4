package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

func tile(name string, ct core.ChartType, size core.TileSize) core.Tile {
	return core.Tile{
		Name:      name,
		ChartType: ct,
		Size:      size,
		Query:     core.Query{Table: "t", Fields: []string{"t.a"}},
	}
}

func requireNoOverlap(t *testing.T, tiles []core.Tile) {
	t.Helper()
	for i := range tiles {
		require.NotNil(t, tiles[i].Position, "tile %q has no position", tiles[i].Name)
		require.NoError(t, tiles[i].Position.Validate(), "tile %q out of bounds", tiles[i].Name)
		for j := i + 1; j < len(tiles); j++ {
			assert.False(t, tiles[i].Position.Overlaps(*tiles[j].Position),
				"tiles %q and %q overlap: %+v vs %+v",
				tiles[i].Name, tiles[j].Name, *tiles[i].Position, *tiles[j].Position)
		}
	}
}

func TestAutoPosition_TwoHalvesThenFull(t *testing.T) {
	tiles := AutoPosition([]core.Tile{
		tile("left", core.ChartLine, core.SizeHalf),
		tile("right", core.ChartLine, core.SizeHalf),
		tile("wide", core.ChartLine, core.SizeFull),
	})

	assert.Equal(t, core.Position{X: 0, Y: 0, W: 6, H: 4}, *tiles[0].Position)
	assert.Equal(t, core.Position{X: 6, Y: 0, W: 6, H: 4}, *tiles[1].Position)
	assert.Equal(t, 0, tiles[2].Position.X)
	assert.Equal(t, 4, tiles[2].Position.Y)
	assert.Equal(t, 12, tiles[2].Position.W)
}

func TestAutoPosition_FourQuarterKPIs(t *testing.T) {
	tiles := AutoPosition([]core.Tile{
		tile("a", core.ChartNumber, core.SizeQuarter),
		tile("b", core.ChartNumber, core.SizeQuarter),
		tile("c", core.ChartNumber, core.SizeQuarter),
		tile("d", core.ChartNumber, core.SizeQuarter),
	})

	for i, wantX := range []int{0, 3, 6, 9} {
		assert.Equal(t, wantX, tiles[i].Position.X, "tile %d", i)
		assert.Equal(t, 0, tiles[i].Position.Y, "tile %d", i)
		assert.Equal(t, 3, tiles[i].Position.W, "tile %d", i)
		assert.Equal(t, 2, tiles[i].Position.H, "tile %d", i)
	}
}

func TestAutoPosition_ChartTypeDefaults(t *testing.T) {
	tiles := AutoPosition([]core.Tile{
		tile("kpi", core.ChartNumber, core.SizeUnset),
		tile("table", core.ChartTable, core.SizeUnset),
	})

	assert.Equal(t, core.Position{X: 0, Y: 0, W: 3, H: 2}, *tiles[0].Position)
	// Table needs a full row; it cannot share row 0 with the KPI.
	assert.Equal(t, core.Position{X: 0, Y: 2, W: 12, H: 6}, *tiles[1].Position)
}

func TestAutoPosition_RespectsPrePositioned(t *testing.T) {
	pinned := tile("pinned", core.ChartLine, core.SizeUnset)
	pinned.Position = &core.Position{X: 0, Y: 0, W: 12, H: 3}

	tiles := AutoPosition([]core.Tile{
		tile("auto", core.ChartLine, core.SizeHalf),
		pinned,
	})

	assert.Equal(t, core.Position{X: 0, Y: 0, W: 12, H: 3}, *tiles[1].Position, "pinned tile unchanged")
	assert.Equal(t, core.Position{X: 0, Y: 3, W: 6, H: 4}, *tiles[0].Position, "auto tile flows below")
	requireNoOverlap(t, tiles)
}

func TestAutoPosition_GridInvariant(t *testing.T) {
	input := []core.Tile{
		tile("a", core.ChartNumber, core.SizeQuarter),
		tile("b", core.ChartTable, core.SizeUnset),
		tile("c", core.ChartLine, core.SizeTwoThirds),
		tile("d", core.ChartPie, core.SizeUnset),
		tile("e", core.ChartNumber, core.SizeUnset),
		tile("f", core.ChartHeatmap, core.SizeFull),
		tile("g", core.ChartBar, core.SizeThird),
	}
	tiles := AutoPosition(input)
	requireNoOverlap(t, tiles)

	// Deterministic: a second run yields identical placement.
	again := AutoPosition(input)
	for i := range tiles {
		assert.Equal(t, *tiles[i].Position, *again[i].Position, "tile %q", tiles[i].Name)
	}
}

func TestAutoPosition_DoesNotMutateInput(t *testing.T) {
	input := []core.Tile{tile("a", core.ChartLine, core.SizeHalf)}
	_ = AutoPosition(input)
	assert.Nil(t, input[0].Position)
}

func TestAutoPositionDashboard_TextTiles(t *testing.T) {
	d := &core.Dashboard{
		Name:      "d",
		Tiles:     []core.Tile{tile("a", core.ChartLine, core.SizeFull)},
		TextTiles: []core.TextTile{{Content: "## Notes"}},
	}
	AutoPositionDashboard(d)

	require.NotNil(t, d.TextTiles[0].Position)
	assert.Equal(t, core.Position{X: 0, Y: 4, W: 12, H: 2}, *d.TextTiles[0].Position)
}

func TestCompact_RemovesVerticalGaps(t *testing.T) {
	a := tile("a", core.ChartLine, core.SizeUnset)
	a.Position = &core.Position{X: 0, Y: 6, W: 6, H: 4}
	b := tile("b", core.ChartLine, core.SizeUnset)
	b.Position = &core.Position{X: 6, Y: 10, W: 6, H: 4}

	tiles := Compact([]core.Tile{a, b})

	assert.Equal(t, core.Position{X: 0, Y: 0, W: 6, H: 4}, *tiles[0].Position)
	assert.Equal(t, core.Position{X: 6, Y: 0, W: 6, H: 4}, *tiles[1].Position)
	requireNoOverlap(t, tiles)
}

func TestCompact_KeepsColumnAndFootprint(t *testing.T) {
	a := tile("a", core.ChartLine, core.SizeUnset)
	a.Position = &core.Position{X: 3, Y: 2, W: 6, H: 4}
	b := tile("b", core.ChartLine, core.SizeUnset)
	b.Position = &core.Position{X: 3, Y: 9, W: 6, H: 4}

	tiles := Compact([]core.Tile{a, b})

	assert.Equal(t, core.Position{X: 3, Y: 0, W: 6, H: 4}, *tiles[0].Position)
	// b stacks directly under a; x never changes.
	assert.Equal(t, core.Position{X: 3, Y: 4, W: 6, H: 4}, *tiles[1].Position)
}
