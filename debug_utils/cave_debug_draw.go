package debug_utils

import (
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
	"github.com/gorustyt/gocave/marching"
)

var (
	wallColor     = DuRGBA(40, 40, 48, 255)
	floorColor    = DuRGBA(220, 214, 196, 255)
	meshColor     = DuRGBA(0, 192, 255, 128)
	outlineColor  = DuRGBA(255, 64, 32, 255)
	passageColor  = DuRGBA(0, 200, 0, 255)
	gridLineColor = DuRGBA(255, 255, 255, 255)
)

// gridOrigin is the world position of the lower-left corner of tile (0, 0)
// when g is centred on the origin, matching the triangulation lattice.
func gridOrigin(g *cave.Grid, squareSize float32) (float32, float32) {
	return -float32(g.Width()) * squareSize / 2, -float32(g.Height()) * squareSize / 2
}

// DuDebugDrawCaveGrid draws one quad per tile, walls dark and floors light.
func DuDebugDrawCaveGrid(dd DuDebugDraw, g *cave.Grid, squareSize float32) {
	if dd == nil || g == nil {
		return
	}
	ox, oz := gridOrigin(g, squareSize)
	dd.Begin(DU_DRAW_QUADS)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			col := floorColor
			if g.IsWall(x, y) {
				col = wallColor
			}
			fx := ox + float32(x)*squareSize
			fz := oz + float32(y)*squareSize
			dd.Vertex1(fx, 0, fz, col)
			dd.Vertex1(fx+squareSize, 0, fz, col)
			dd.Vertex1(fx+squareSize, 0, fz+squareSize, col)
			dd.Vertex1(fx, 0, fz+squareSize, col)
		}
	}
	dd.End()
}

// DuDebugDrawRooms tints each room's tiles by room id and marks edge tiles.
func DuDebugDrawRooms(dd DuDebugDraw, g *cave.Grid, rooms []*cave.Room, squareSize float32, alphas ...float32) {
	if dd == nil || g == nil {
		return
	}
	alpha := float32(0.5)
	if len(alphas) > 0 {
		alpha = common.Clamp(alphas[0], 0, 1)
	}
	a := int(alpha * 255.0)
	ox, oz := gridOrigin(g, squareSize)

	dd.Begin(DU_DRAW_QUADS)
	for _, room := range rooms {
		col := DuIntToCol(room.ID+1, a)
		for _, t := range room.Tiles {
			fx := ox + float32(t.X)*squareSize
			fz := oz + float32(t.Y)*squareSize
			dd.Vertex1(fx, 0, fz, col)
			dd.Vertex1(fx+squareSize, 0, fz, col)
			dd.Vertex1(fx+squareSize, 0, fz+squareSize, col)
			dd.Vertex1(fx, 0, fz+squareSize, col)
		}
	}
	dd.End()

	dd.Begin(DU_DRAW_POINTS, 3.0)
	for _, room := range rooms {
		col := DuDarkenCol(DuIntToCol(room.ID+1, 255))
		for _, t := range room.EdgeTiles {
			p := cave.CoordToWorld(g, t, squareSize)
			dd.Vertex1(p.X(), 0, p.Z(), col)
		}
	}
	dd.End()
}

// DuDebugDrawCaveMesh draws the triangles of m.
func DuDebugDrawCaveMesh(dd DuDebugDraw, m *marching.MeshData) {
	if dd == nil || m == nil {
		return
	}
	dd.Begin(DU_DRAW_TRIS)
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		for _, v := range tri {
			dd.Vertex(m.Vertices[v], meshColor)
		}
	}
	dd.End()
}

// DuDebugDrawOutlines draws every outline as a line loop, each in its own
// color, and marks where each loop starts.
func DuDebugDrawOutlines(dd DuDebugDraw, vertices []common.Vec3, outlines []marching.Outline) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, 2.5)
	for i, o := range outlines {
		col := DuLerpCol(outlineColor, DuIntToCol(i, 255), 64)
		for j := 0; j+1 < len(o); j++ {
			dd.Vertex(vertices[o[j]], col)
			dd.Vertex(vertices[o[j+1]], col)
		}
	}
	dd.End()

	for i, o := range outlines {
		if len(o) == 0 {
			continue
		}
		start := vertices[o[0]]
		DuDebugDrawCross(dd, start.X(), start.Y(), start.Z(), 0.25, DuIntToCol(i, 255), 1.5)
	}
}

// DuDebugDrawPassages draws a line and end crosses for every passage marker.
func DuDebugDrawPassages(dd DuDebugDraw, markers []PassageLine) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, 2.0)
	for _, m := range markers {
		dd.Vertex(m.From, passageColor)
		dd.Vertex(m.To, passageColor)
		DuAppendCross(dd, m.From.X(), m.From.Y(), m.From.Z(), 0.3, passageColor)
		DuAppendCross(dd, m.To.X(), m.To.Y(), m.To.Z(), 0.3, passageColor)
	}
	dd.End()
}
