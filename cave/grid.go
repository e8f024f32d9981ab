package cave

import "strings"

type CellState uint8

const (
	Floor CellState = 0
	Wall  CellState = 1
)

func (s CellState) String() string {
	if s == Wall {
		return "wall"
	}
	return "floor"
}

// Coord is a tile position in grid space.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a fixed width x height occupancy map stored row-major.
// Stages hand the grid to each other; only the current stage mutates it.
type Grid struct {
	width  int
	height int
	cells  []CellState
}

func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{width: width, height: height, cells: make([]CellState, width*height)}
}

// NewGridFilled returns a grid with every cell set to state.
func NewGridFilled(width, height int, state CellState) *Grid {
	g := NewGrid(width, height)
	g.Fill(state)
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int { return x + y*g.width }

// At returns the state at (x, y). Out of range positions read as Wall.
func (g *Grid) At(x, y int) CellState {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[g.index(x, y)]
}

func (g *Grid) IsWall(x, y int) bool { return g.At(x, y) == Wall }

func (g *Grid) Set(x, y int, state CellState) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = state
}

func (g *Grid) Fill(state CellState) {
	for i := range g.cells {
		g.cells[i] = state
	}
}

// FillRect sets every cell in [x0,x1]x[y0,y1] to state, clipped to the grid.
func (g *Grid) FillRect(x0, y0, x1, y1 int, state CellState) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Set(x, y, state)
		}
	}
}

func (g *Grid) Count(state CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == state {
			n++
		}
	}
	return n
}

func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]CellState, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) copyFrom(src *Grid) {
	copy(g.cells, src.cells)
}

func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Cells returns a copy of the grid as a row-major slice.
func (g *Grid) Cells() []CellState {
	res := make([]CellState, len(g.cells))
	copy(res, g.cells)
	return res
}

// Rows renders the grid top row first, '#' for Wall and '.' for Floor.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.height)
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			if g.At(x, y) == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// ParseGrid is the inverse of Rows. Any byte other than '#' is Floor.
func ParseGrid(rows []string) *Grid {
	height := len(rows)
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	g := NewGrid(width, height)
	for i, r := range rows {
		y := height - 1 - i
		for x := 0; x < len(r); x++ {
			if r[x] == '#' {
				g.Set(x, y, Wall)
			}
		}
	}
	return g
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
