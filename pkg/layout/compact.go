package layout

import (
	"sort"

	"github.com/leapstack-labs/leapboard/pkg/core"
)

// Compact removes vertical gaps: tiles are visited in (y, x) order and each
// is re-placed at the lowest y where it does not overlap tiles already
// re-placed. A tile's x and footprint never change; this is first-fit-by-
// column compaction, not a bin-packing optimum.
//
// Tiles without a position are returned unchanged.
func Compact(tiles []core.Tile) []core.Tile {
	out := make([]core.Tile, len(tiles))
	copy(out, tiles)

	order := make([]int, 0, len(out))
	for i := range out {
		if out[i].Position != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := out[order[a]].Position, out[order[b]].Position
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return pa.X < pb.X
	})

	var placed []core.Position
	for _, i := range order {
		p := *out[i].Position
		for y := 0; y < p.Y; y++ {
			candidate := core.Position{X: p.X, Y: y, W: p.W, H: p.H}
			if !overlapsAny(candidate, placed) {
				p = candidate
				break
			}
		}
		placed = append(placed, p)
		pos := p
		out[i].Position = &pos
	}
	return out
}

func overlapsAny(p core.Position, placed []core.Position) bool {
	for _, o := range placed {
		if p.Overlaps(o) {
			return true
		}
	}
	return false
}
