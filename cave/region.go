package cave

import "github.com/gorustyt/gocave/common"

// Region is one maximal 4-connected set of same-state tiles. Tile order
// follows the fill and carries no meaning.
type Region []Coord

func (r Region) Len() int { return len(r) }

func (r Region) Contains(c Coord) bool {
	for _, t := range r {
		if t == c {
			return true
		}
	}
	return false
}

// FloodFill returns the region of tiles with the given state that is
// 4-connected to start. An out of range start, or one whose state differs,
// yields an empty region.
func FloodFill(g *Grid, start Coord, state CellState) Region {
	flags := make([]bool, len(g.cells))
	return floodRegion(g, start, state, flags, common.NewStack[Coord]())
}

// floodRegion marks every visited tile in flags. The stack is cleared and
// reused so callers can share one across fills.
func floodRegion(g *Grid, start Coord, state CellState, flags []bool, stack common.Stack[Coord]) Region {
	if !g.InBounds(start.X, start.Y) || g.At(start.X, start.Y) != state {
		return nil
	}
	si := g.index(start.X, start.Y)
	if flags[si] {
		return nil
	}
	var tiles Region
	stack.Clear()
	stack.Push(start)
	flags[si] = true
	for !stack.Empty() {
		tile := stack.Pop()
		tiles = append(tiles, tile)
		for dir := 0; dir < 4; dir++ {
			ax := tile.X + common.GetDirOffsetX(dir)
			ay := tile.Y + common.GetDirOffsetY(dir)
			if !g.InBounds(ax, ay) {
				continue
			}
			ai := g.index(ax, ay)
			if flags[ai] || g.cells[ai] != state {
				continue
			}
			flags[ai] = true
			stack.Push(Coord{X: ax, Y: ay})
		}
	}
	return tiles
}

// RegionsOf scans g row-major and returns every maximal region of state.
func RegionsOf(g *Grid, state CellState) []Region {
	var regions []Region
	flags := make([]bool, len(g.cells))
	stack := common.NewStackCap[Coord](g.Width() + g.Height())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := g.index(x, y)
			if flags[i] || g.cells[i] != state {
				continue
			}
			regions = append(regions, floodRegion(g, Coord{X: x, Y: y}, state, flags, stack))
		}
	}
	return regions
}
