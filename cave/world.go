package cave

import "github.com/gorustyt/gocave/common"

// passageMarkerHeight lifts passage markers above the floor plane.
const passageMarkerHeight = 2

// CoordToWorld returns the world position of the centre of tile c when g is
// laid out centred on the origin with tiles of squareSize.
func CoordToWorld(g *Grid, c Coord, squareSize float32) common.Vec3 {
	return common.Vec3{
		(-float32(g.width)/2 + 0.5 + float32(c.X)) * squareSize,
		passageMarkerHeight,
		(-float32(g.height)/2 + 0.5 + float32(c.Y)) * squareSize,
	}
}
