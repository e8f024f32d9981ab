package debug_utils

import (
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
)

// PassageLine is a debug line between the closest tiles of two linked rooms.
type PassageLine struct {
	Passage  cave.Passage
	From, To common.Vec3
}

// PassageRecorder collects passage markers in world space. It implements
// cave.PassageMarker.
type PassageRecorder struct {
	grid       *cave.Grid
	squareSize float32
	Lines      []PassageLine
}

func NewPassageRecorder(g *cave.Grid, squareSize float32) *PassageRecorder {
	return &PassageRecorder{grid: g, squareSize: squareSize}
}

func (r *PassageRecorder) MarkPassage(p cave.Passage) {
	r.Lines = append(r.Lines, PassageLine{
		Passage: p,
		From:    cave.CoordToWorld(r.grid, p.TileA, r.squareSize),
		To:      cave.CoordToWorld(r.grid, p.TileB, r.squareSize),
	})
}
