package debug_utils

import (
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gorustyt/gocave/common"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// ImageDebugDraw rasterises debug primitives onto an RGBA image, looking
// down the y axis: world x maps to image x and world z to image -y.
type ImageDebugDraw struct {
	img    *image.RGBA
	raster *vector.Rasterizer

	minX, maxZ float32
	scale      float32

	prim  DuDebugDrawPrimitives
	size  float32
	verts []common.Vec3
	cols  []Colorb
}

// NewImageDebugDraw covers the world rectangle [minX,maxX]x[minZ,maxZ] at
// pixelsPerUnit resolution, cleared to black.
func NewImageDebugDraw(minX, minZ, maxX, maxZ, pixelsPerUnit float32) *ImageDebugDraw {
	w := max(1, int(math.Ceil(float64((maxX-minX)*pixelsPerUnit))))
	h := max(1, int(math.Ceil(float64((maxZ-minZ)*pixelsPerUnit))))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.Black), image.Point{}, draw.Src)
	return &ImageDebugDraw{
		img:    img,
		raster: vector.NewRasterizer(w, h),
		minX:   minX,
		maxZ:   maxZ,
		scale:  pixelsPerUnit,
	}
}

func (d *ImageDebugDraw) Image() *image.RGBA {
	return d.img
}

func (d *ImageDebugDraw) EncodePNG(w io.Writer) error {
	return png.Encode(w, d.img)
}

func (d *ImageDebugDraw) Begin(prim DuDebugDrawPrimitives, size ...float32) {
	d.prim = prim
	d.size = 1
	if len(size) > 0 {
		d.size = size[0]
	}
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *ImageDebugDraw) Vertex(pos common.Vec3, color Colorb) {
	d.verts = append(d.verts, pos)
	d.cols = append(d.cols, color)
	if len(d.verts) == d.prim.VertsPerPrimitive() {
		d.flush()
	}
}

func (d *ImageDebugDraw) Vertex1(x, y, z float32, color Colorb) {
	d.Vertex(common.Vec3{x, y, z}, color)
}

// End drops any incomplete primitive.
func (d *ImageDebugDraw) End() {
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *ImageDebugDraw) project(v common.Vec3) (float32, float32) {
	return (v.X() - d.minX) * d.scale, (d.maxZ - v.Z()) * d.scale
}

func (d *ImageDebugDraw) flush() {
	col := d.cols[0]
	switch d.prim {
	case DU_DRAW_POINTS:
		x, y := d.project(d.verts[0])
		r := max(d.size/2, 0.5)
		d.fillPolygon(col, x-r, y-r, x+r, y-r, x+r, y+r, x-r, y+r)
	case DU_DRAW_LINES:
		x0, y0 := d.project(d.verts[0])
		x1, y1 := d.project(d.verts[1])
		d.strokeLine(col, x0, y0, x1, y1)
	default:
		pts := make([]float32, 0, 2*len(d.verts))
		for _, v := range d.verts {
			x, y := d.project(v)
			pts = append(pts, x, y)
		}
		d.fillPolygon(col, pts...)
	}
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *ImageDebugDraw) strokeLine(col Colorb, x0, y0, x1, y1 float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	hw := max(d.size/2, 0.5)
	nx, ny := -dy/l*hw, dx/l*hw
	d.fillPolygon(col, x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
}

func (d *ImageDebugDraw) fillPolygon(col Colorb, pts ...float32) {
	if len(pts) < 6 {
		return
	}
	b := d.img.Bounds()
	d.raster.Reset(b.Dx(), b.Dy())
	d.raster.DrawOp = draw.Over
	d.raster.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		d.raster.LineTo(pts[i], pts[i+1])
	}
	d.raster.ClosePath()
	d.raster.Draw(d.img, b, image.NewUniform(col.NRGBA()), image.Point{})
}

var ErrNothingToDraw = errors.New("debug_utils: nothing to draw")
