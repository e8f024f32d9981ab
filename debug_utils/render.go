package debug_utils

import (
	"io"

	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/marching"
)

// CaveScene groups what DuRenderCave draws. Grid is the bordered map the
// mesh was built from; Rooms and Passages refer to the unbordered map in
// RoomGrid. Both grids are centred on the origin.
type CaveScene struct {
	Grid       *cave.Grid
	RoomGrid   *cave.Grid
	Rooms      []*cave.Room
	Passages   []PassageLine
	Mesh       *marching.MeshData
	SquareSize float32
}

// DuRenderCave draws the scene from above at pixelsPerUnit resolution.
func DuRenderCave(scene *CaveScene, pixelsPerUnit float32) *ImageDebugDraw {
	if scene == nil || scene.Grid == nil {
		return nil
	}
	ox, oz := gridOrigin(scene.Grid, scene.SquareSize)
	dd := NewImageDebugDraw(ox, oz, -ox, -oz, pixelsPerUnit)
	DuDebugDrawCave(dd, scene)
	return dd
}

// DuDebugDrawCave draws tiles, rooms, mesh, outlines and passages of scene
// in that order, with a faint tile grid over the map.
func DuDebugDrawCave(dd DuDebugDraw, scene *CaveScene) {
	if dd == nil || scene == nil || scene.Grid == nil {
		return
	}
	DuDebugDrawCaveGrid(dd, scene.Grid, scene.SquareSize)
	if scene.RoomGrid != nil {
		DuDebugDrawRooms(dd, scene.RoomGrid, scene.Rooms, scene.SquareSize)
	}
	if scene.Mesh != nil {
		DuDebugDrawCaveMesh(dd, scene.Mesh)
		DuDebugDrawOutlines(dd, scene.Mesh.Vertices, scene.Mesh.Outlines)
	}
	DuDebugDrawPassages(dd, scene.Passages)

	ox, oz := gridOrigin(scene.Grid, scene.SquareSize)
	DuDebugDrawGridXZ(dd, ox, 0, oz, scene.Grid.Width(), scene.Grid.Height(), scene.SquareSize,
		DuTransCol(gridLineColor, 48), 1.0)
}

// DuWriteCavePNG renders the scene and encodes it as PNG.
func DuWriteCavePNG(w io.Writer, scene *CaveScene, pixelsPerUnit float32) error {
	dd := DuRenderCave(scene, pixelsPerUnit)
	if dd == nil {
		return ErrNothingToDraw
	}
	return dd.EncodePNG(w)
}
