package marching

import (
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
)

// MeshData is the output of one triangulation. Triangles holds three
// vertex indices per triangle. Interior lists vertices that belong to
// fully walled squares and so can never lie on an outline. Adjacency maps
// each vertex to its triangles; it is not part of the encoded forms and is
// rebuilt on demand for decoded meshes.
type MeshData struct {
	Vertices  []common.Vec3
	Triangles []int
	Interior  []int
	Outlines  []Outline
	Adjacency Adjacency
}

func (m *MeshData) TriangleCount() int { return len(m.Triangles) / 3 }

// Triangle returns triangle i.
func (m *MeshData) Triangle(i int) Triangle {
	return Triangle{m.Triangles[i*3], m.Triangles[i*3+1], m.Triangles[i*3+2]}
}

// TriangleAdjacency returns m.Adjacency, building it first when it is
// missing or stale.
func (m *MeshData) TriangleAdjacency() Adjacency {
	if m.Adjacency == nil || len(m.Adjacency) < len(m.Vertices) {
		m.Adjacency = BuildAdjacency(len(m.Vertices), m.Triangles)
	}
	return m.Adjacency
}

// CalculateOutlines traces the boundary loops of the mesh into m.Outlines.
func (m *MeshData) CalculateOutlines() []Outline {
	m.Outlines = traceOutlines(m.TriangleAdjacency(), m.Interior)
	return m.Outlines
}

// Triangulate builds a fresh lattice from g and converts it into a mesh
// with shared edge vertices. The mesh carries its triangle adjacency.
func Triangulate(g *cave.Grid, squareSize float32) *MeshData {
	return TriangulateSquares(NewSquareGrid(g, squareSize))
}

// TriangulateSquares emits every square of sg. Vertex indices are assigned
// to lattice nodes on first use, so sg must not have been triangulated
// before.
func TriangulateSquares(sg *SquareGrid) *MeshData {
	t := &triangulator{sg: sg, mesh: &MeshData{}}
	for i := range sg.Squares {
		t.triangulateSquare(&sg.Squares[i])
	}
	t.mesh.Adjacency = BuildAdjacency(len(t.mesh.Vertices), t.mesh.Triangles)
	return t.mesh
}

type triangulator struct {
	sg       *SquareGrid
	mesh     *MeshData
	interior []bool
	points   []int
}

func (t *triangulator) triangulateSquare(s *Square) {
	table := ConfigurationPoints(s.Configuration)
	if len(table) == 0 {
		return
	}
	t.points = t.points[:0]
	for _, p := range table {
		t.points = append(t.points, t.sg.point(s, p))
	}
	t.meshFromPoints(t.points)

	if s.Configuration == FullConfiguration {
		for _, n := range t.points {
			t.markInterior(t.sg.Nodes[n].VertexIndex)
		}
	}
}

func (t *triangulator) meshFromPoints(points []int) {
	t.assignVertices(points)
	for _, tri := range FanTriangles(len(points)) {
		t.createTriangle(points[tri[0]], points[tri[1]], points[tri[2]])
	}
}

func (t *triangulator) assignVertices(points []int) {
	for _, n := range points {
		node := &t.sg.Nodes[n]
		if node.VertexIndex == unassignedVertex {
			node.VertexIndex = len(t.mesh.Vertices)
			t.mesh.Vertices = append(t.mesh.Vertices, node.Position)
		}
	}
}

func (t *triangulator) createTriangle(a, b, c int) {
	t.mesh.Triangles = append(t.mesh.Triangles,
		t.sg.Nodes[a].VertexIndex,
		t.sg.Nodes[b].VertexIndex,
		t.sg.Nodes[c].VertexIndex,
	)
}

func (t *triangulator) markInterior(v int) {
	for len(t.interior) <= v {
		t.interior = append(t.interior, false)
	}
	if t.interior[v] {
		return
	}
	t.interior[v] = true
	t.mesh.Interior = append(t.mesh.Interior, v)
}
