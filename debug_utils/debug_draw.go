package debug_utils

import "github.com/gorustyt/gocave/common"

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
	DU_DRAW_QUADS
)

// VertsPerPrimitive is how many vertices make one primitive of prim.
func (prim DuDebugDrawPrimitives) VertsPerPrimitive() int {
	switch prim {
	case DU_DRAW_POINTS:
		return 1
	case DU_DRAW_LINES:
		return 2
	case DU_DRAW_TRIS:
		return 3
	default:
		return 4
	}
}

type DuDebugDraw interface {
	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float32)

	/// Submit a vertex
	///  @param pos [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex(pos common.Vec3, color Colorb)

	/// Submit a vertex
	///  @param x,y,z [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex1(x, y, z float32, color Colorb)

	/// End drawing primitives.
	End()
}

// DuDebugDrawBase swallows every call.
type DuDebugDrawBase struct {
}

func NewDuDebugDraw() DuDebugDraw {
	return &DuDebugDrawBase{}
}
func (d *DuDebugDrawBase) Begin(prim DuDebugDrawPrimitives, size ...float32) {}
func (d *DuDebugDrawBase) Vertex(pos common.Vec3, color Colorb)              {}
func (d *DuDebugDrawBase) Vertex1(x, y, z float32, color Colorb)             {}
func (d *DuDebugDrawBase) End()                                              {}

func DuDebugDrawGridXZ(dd DuDebugDraw, ox, oy, oz float32,
	w, h int, size float32,
	col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 0; i <= h; i++ {
		dd.Vertex1(ox, oy, oz+float32(i)*size, col)
		dd.Vertex1(ox+float32(w)*size, oy, oz+float32(i)*size, col)
	}
	for i := 0; i <= w; i++ {
		dd.Vertex1(ox+float32(i)*size, oy, oz, col)
		dd.Vertex1(ox+float32(i)*size, oy, oz+float32(h)*size, col)
	}
	dd.End()
}

func DuAppendCross(dd DuDebugDraw, x, y, z, s float32, col Colorb) {
	dd.Vertex1(x-s, y, z, col)
	dd.Vertex1(x+s, y, z, col)
	dd.Vertex1(x, y-s, z, col)
	dd.Vertex1(x, y+s, z, col)
	dd.Vertex1(x, y, z-s, col)
	dd.Vertex1(x, y, z+s, col)
}

func DuDebugDrawCross(dd DuDebugDraw, x, y, z, size float32, col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCross(dd, x, y, z, size, col)
	dd.End()
}
