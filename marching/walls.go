package marching

import "github.com/gorustyt/gocave/common"

// WallMesh is the vertical skirt hung from every outline.
type WallMesh struct {
	Vertices  []common.Vec3
	Triangles []int
}

// ExtrudeWalls emits two triangles per outline segment, dropping each
// segment by wallHeight along -y.
func ExtrudeWalls(vertices []common.Vec3, outlines []Outline, wallHeight float32) *WallMesh {
	walls := &WallMesh{}
	down := common.Vec3{0, -wallHeight, 0}
	for _, outline := range outlines {
		for i := 0; i < len(outline)-1; i++ {
			startIndex := len(walls.Vertices)
			left := vertices[outline[i]]
			right := vertices[outline[i+1]]
			walls.Vertices = append(walls.Vertices,
				left,
				right,
				left.Add(down),
				right.Add(down),
			)
			walls.Triangles = append(walls.Triangles,
				startIndex+0, startIndex+2, startIndex+3,
				startIndex+3, startIndex+1, startIndex+0,
			)
		}
	}
	return walls
}

// ColliderPaths projects each outline onto the xz plane as a point
// sequence for 2D edge colliders.
func ColliderPaths(vertices []common.Vec3, outlines []Outline) [][]common.Vec2 {
	paths := make([][]common.Vec2, 0, len(outlines))
	for _, outline := range outlines {
		path := make([]common.Vec2, 0, len(outline))
		for _, v := range outline {
			p := vertices[v]
			path = append(path, common.Vec2{p.X(), p.Z()})
		}
		paths = append(paths, path)
	}
	return paths
}
