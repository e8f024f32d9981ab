package marching

import (
	"sort"
	"testing"

	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
)

func TestIsOutlineEdge(t *testing.T) {
	// two triangles sharing the diagonal 0-2 of a quad
	adj := BuildAdjacency(4, []int{0, 1, 2, 0, 2, 3})
	if adj.IsOutlineEdge(0, 2) {
		t.Errorf("shared diagonal is not an outline edge")
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		if !adj.IsOutlineEdge(e[0], e[1]) {
			t.Errorf("quad side %v should be an outline edge", e)
		}
	}
	if adj.IsOutlineEdge(1, 3) {
		t.Errorf("vertices with no common triangle share no edge")
	}
	if adj.IsOutlineEdge(9, 0) {
		t.Errorf("unknown vertex has no edges")
	}
}

func TestTraceOutlinesQuad(t *testing.T) {
	vertices := make([]common.Vec3, 4)
	outlines := TraceOutlines(vertices, []int{0, 1, 2, 0, 2, 3}, nil)
	if len(outlines) != 1 {
		t.Fatalf("outlines = %d, want 1", len(outlines))
	}
	o := outlines[0]
	if len(o) != 5 || !o.Closed() {
		t.Errorf("outline = %v", o)
	}
	adj := BuildAdjacency(4, []int{0, 1, 2, 0, 2, 3})
	for i := 0; i < len(o)-1; i++ {
		if !adj.IsOutlineEdge(o[i], o[i+1]) {
			t.Errorf("segment %d-%d is not a boundary edge", o[i], o[i+1])
		}
	}
}

func TestTraceOutlinesInteriorSkipped(t *testing.T) {
	vertices := make([]common.Vec3, 4)
	outlines := TraceOutlines(vertices, []int{0, 1, 2, 0, 2, 3}, []int{0, 1, 2, 3})
	if len(outlines) != 0 {
		t.Errorf("interior vertices start no outline, got %v", outlines)
	}
}

func TestTraceOutlinesDegenerate(t *testing.T) {
	if got := TraceOutlines(nil, nil, nil); len(got) != 0 {
		t.Errorf("empty mesh has no outlines")
	}
	// vertex 3 is referenced by no triangle
	vertices := make([]common.Vec3, 4)
	outlines := TraceOutlines(vertices, []int{0, 1, 2}, []int{7, -1})
	if len(outlines) != 1 || len(outlines[0]) != 4 {
		t.Errorf("single triangle outlines = %v", outlines)
	}
}

func TestTraceOutlinesSingleHole(t *testing.T) {
	g := cave.ParseGrid([]string{
		"###",
		"#.#",
		"###",
	})
	m := Triangulate(g, 1)
	outlines := m.CalculateOutlines()
	// no fully walled squares, so the map perimeter is traced too
	if len(outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(outlines))
	}
	lengths := []int{len(outlines[0]), len(outlines[1])}
	sort.Ints(lengths)
	if lengths[0] != 5 || lengths[1] != 9 {
		t.Errorf("outline lengths = %v, want diamond 5 and perimeter 9", lengths)
	}
}

func TestTraceOutlinesSeparateLoops(t *testing.T) {
	g := cave.NewGridFilled(12, 8, cave.Wall)
	g.FillRect(2, 2, 3, 5, cave.Floor)
	g.FillRect(7, 2, 9, 4, cave.Floor)
	m := Triangulate(g, 1)
	outlines := m.CalculateOutlines()
	if len(outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(outlines))
	}
	adj := BuildAdjacency(len(m.Vertices), m.Triangles)
	used := map[int]bool{}
	for _, o := range outlines {
		if !o.Closed() {
			t.Errorf("outline not closed")
		}
		for i := 0; i < len(o)-1; i++ {
			if !adj.IsOutlineEdge(o[i], o[i+1]) {
				t.Errorf("segment %d-%d is not a boundary edge", o[i], o[i+1])
			}
			if used[o[i]] {
				t.Errorf("vertex %d appears in two loops", o[i])
			}
			used[o[i]] = true
		}
	}
	// 2x4 hole has 12 perimeter midpoints, 3x3 hole has 12
	if len(outlines[0]) != 13 || len(outlines[1]) != 13 {
		t.Errorf("outline lengths %d and %d", len(outlines[0]), len(outlines[1]))
	}
}

func TestOutlineSignedArea(t *testing.T) {
	mesh := Triangulate(squareIsland(), 1)
	outlines := mesh.CalculateOutlines()
	if len(outlines) != 1 {
		t.Fatalf("outlines = %d", len(outlines))
	}
	// A 4x4 floor square: the 9 inner squares, half of the 12 side squares
	// and one corner triangle of each of the 4 corner squares.
	area := outlines[0].SignedArea(mesh.Vertices)
	if area != 15.5 && area != -15.5 {
		t.Errorf("area = %v, want |15.5|", area)
	}
	if (Outline{0, 1, 2}).SignedArea(mesh.Vertices) != 0 {
		t.Error("open loop should have no area")
	}
}
