package marching

import "github.com/gorustyt/gocave/common"

// Triangle is three vertex indices.
type Triangle [3]int

func (t Triangle) Contains(v int) bool {
	return t[0] == v || t[1] == v || t[2] == v
}

// Adjacency maps each vertex index to the triangles that use it.
type Adjacency [][]Triangle

// BuildAdjacency indexes triangles by vertex. vertexCount is grown to fit
// any index the triangle list references.
func BuildAdjacency(vertexCount int, triangles []int) Adjacency {
	for _, v := range triangles {
		if v >= vertexCount {
			vertexCount = v + 1
		}
	}
	adj := make(Adjacency, vertexCount)
	for i := 0; i+2 < len(triangles); i += 3 {
		tri := Triangle{triangles[i], triangles[i+1], triangles[i+2]}
		for _, v := range tri {
			if v < 0 {
				continue
			}
			adj[v] = append(adj[v], tri)
		}
	}
	return adj
}

// IsOutlineEdge reports whether edge (a, b) belongs to exactly one triangle.
func (adj Adjacency) IsOutlineEdge(a, b int) bool {
	if a < 0 || a >= len(adj) {
		return false
	}
	shared := 0
	for _, tri := range adj[a] {
		if tri.Contains(b) {
			shared++
			if shared > 1 {
				return false
			}
		}
	}
	return shared == 1
}

// Outline is a closed loop of vertex indices; the first index is repeated
// at the end.
type Outline []int

// Closed reports whether the loop ends where it starts.
func (o Outline) Closed() bool {
	return len(o) > 1 && o[0] == o[len(o)-1]
}

// SignedArea is the xz-plane area enclosed by the loop. Loops around a
// floor pocket and loops around a wall island have opposite signs.
func (o Outline) SignedArea(vertices []common.Vec3) float32 {
	if !o.Closed() {
		return 0
	}
	pts := make([]common.Vec3, 0, len(o)-1)
	for _, v := range o[:len(o)-1] {
		pts = append(pts, vertices[v])
	}
	return common.PolyArea2D(pts)
}

type outlineTracer struct {
	adj     Adjacency
	checked []bool
}

// TraceOutlines walks the boundary edges of a triangle mesh into closed
// loops. Vertices listed in interior are never visited.
func TraceOutlines(vertices []common.Vec3, triangles []int, interior []int) []Outline {
	return traceOutlines(BuildAdjacency(len(vertices), triangles), interior)
}

func traceOutlines(adj Adjacency, interior []int) []Outline {
	t := &outlineTracer{adj: adj}
	t.checked = make([]bool, len(t.adj))
	for _, v := range interior {
		if v >= 0 && v < len(t.checked) {
			t.checked[v] = true
		}
	}

	var outlines []Outline
	for vertexIndex := range t.checked {
		if t.checked[vertexIndex] {
			continue
		}
		next := t.connectedOutlineVertex(vertexIndex)
		if next == -1 {
			continue
		}
		t.checked[vertexIndex] = true
		outline := Outline{vertexIndex}
		outline = t.follow(outline, next)
		outline = append(outline, vertexIndex)
		outlines = append(outlines, outline)
	}
	return outlines
}

// follow extends outline along unchecked boundary edges starting at v
// until the chain runs out.
func (t *outlineTracer) follow(outline Outline, v int) Outline {
	for v != -1 {
		outline = append(outline, v)
		t.checked[v] = true
		v = t.connectedOutlineVertex(v)
	}
	return outline
}

func (t *outlineTracer) connectedOutlineVertex(v int) int {
	for _, tri := range t.adj[v] {
		for _, vb := range tri {
			if vb != v && vb >= 0 && !t.checked[vb] && t.adj.IsOutlineEdge(v, vb) {
				return vb
			}
		}
	}
	return -1
}
