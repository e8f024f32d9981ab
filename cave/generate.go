package cave

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"
)

// SeedFromString hashes a seed string into a stable 64-bit seed.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// TimeSeed returns a seed string derived from the current time.
func TimeSeed() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// Generate fills a width x height grid. The outer ring is always wall and
// interior tiles are wall with probability fillPercent/100. The same seed
// always yields the same grid.
func Generate(width, height, fillPercent int, seed int64) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if fillPercent < 0 || fillPercent > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFill, fillPercent)
	}
	g := NewGrid(width, height)
	prng := rand.New(rand.NewSource(seed))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				g.Set(x, y, Wall)
				continue
			}
			if prng.Intn(100) < fillPercent {
				g.Set(x, y, Wall)
			} else {
				g.Set(x, y, Floor)
			}
		}
	}
	return g, nil
}

// SurroundingWallCount counts walls among the 8 neighbours of (x, y).
// Neighbours outside the grid count as walls.
func SurroundingWallCount(g *Grid, x, y int) int {
	wallCount := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.IsWall(nx, ny) {
				wallCount++
			}
		}
	}
	return wallCount
}

// Smooth runs iterations cellular automaton passes over g. Each pass reads
// only the previous pass's grid. After every pass a ring of margin tiles
// is forced back to wall.
func Smooth(g *Grid, iterations, margin int) {
	if iterations <= 0 {
		return
	}
	prev := g.Clone()
	for i := 0; i < iterations; i++ {
		if i > 0 {
			prev.copyFrom(g)
		}
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				wallCount := SurroundingWallCount(prev, x, y)
				if wallCount > 4 {
					g.Set(x, y, Wall)
				} else if wallCount < 4 {
					g.Set(x, y, Floor)
				}
				if inMargin(g, x, y, margin) {
					g.Set(x, y, Wall)
				}
			}
		}
	}
}

func inMargin(g *Grid, x, y, margin int) bool {
	return x < margin || x >= g.width-margin || y < margin || y >= g.height-margin
}

// Bordered returns a copy of g padded with borderSize wall tiles on every side.
func Bordered(g *Grid, borderSize int) *Grid {
	if borderSize <= 0 {
		return g.Clone()
	}
	b := NewGridFilled(g.width+borderSize*2, g.height+borderSize*2, Wall)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			b.Set(x+borderSize, y+borderSize, g.At(x, y))
		}
	}
	return b
}
