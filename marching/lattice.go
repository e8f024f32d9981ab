package marching

import (
	"github.com/gorustyt/gocave/cave"
	"github.com/gorustyt/gocave/common"
)

const unassignedVertex = -1

// Node is a lattice point. VertexIndex stays -1 until the node is first
// emitted into a mesh.
type Node struct {
	Position    common.Vec3
	VertexIndex int
}

// ControlNode mirrors one grid tile. Node, Above and Right index into the
// lattice node arena; Above and Right are the midpoints of the edges to
// the tile above and to the right and are shared by neighbouring squares.
type ControlNode struct {
	Node   int
	Active bool
	Above  int
	Right  int
}

// Square views four neighbouring control nodes and the four edge
// midpoints between them. Corners index the control node arena, centres
// index the node arena.
type Square struct {
	TopLeft, TopRight, BottomRight, BottomLeft       int
	CentreTop, CentreRight, CentreBottom, CentreLeft int
	Configuration                                    int
}

// SquareGrid is the lattice built from one grid snapshot. It owns every
// node; squares only hold indices.
type SquareGrid struct {
	Nodes      []Node
	Controls   []ControlNode
	Squares    []Square
	NodeCountX int
	NodeCountY int
	SquareSize float32
}

func NewSquareGrid(g *cave.Grid, squareSize float32) *SquareGrid {
	nodeCountX := g.Width()
	nodeCountY := g.Height()
	mapWidth := float32(nodeCountX) * squareSize
	mapHeight := float32(nodeCountY) * squareSize

	sg := &SquareGrid{
		Nodes:      make([]Node, 0, 3*nodeCountX*nodeCountY),
		Controls:   make([]ControlNode, nodeCountX*nodeCountY),
		NodeCountX: nodeCountX,
		NodeCountY: nodeCountY,
		SquareSize: squareSize,
	}
	half := squareSize / 2
	for y := 0; y < nodeCountY; y++ {
		for x := 0; x < nodeCountX; x++ {
			position := common.Vec3{
				-mapWidth/2 + float32(x)*squareSize + half,
				0,
				-mapHeight/2 + float32(y)*squareSize + half,
			}
			sg.Controls[sg.controlIndex(x, y)] = ControlNode{
				Node:   sg.addNode(position),
				Active: g.IsWall(x, y),
				Above:  sg.addNode(position.Add(common.Vec3{0, 0, half})),
				Right:  sg.addNode(position.Add(common.Vec3{half, 0, 0})),
			}
		}
	}

	if nodeCountX < 2 || nodeCountY < 2 {
		return sg
	}
	sg.Squares = make([]Square, 0, (nodeCountX-1)*(nodeCountY-1))
	for y := 0; y < nodeCountY-1; y++ {
		for x := 0; x < nodeCountX-1; x++ {
			sg.Squares = append(sg.Squares, sg.newSquare(
				sg.controlIndex(x, y+1),
				sg.controlIndex(x+1, y+1),
				sg.controlIndex(x+1, y),
				sg.controlIndex(x, y),
			))
		}
	}
	return sg
}

func (sg *SquareGrid) addNode(position common.Vec3) int {
	sg.Nodes = append(sg.Nodes, Node{Position: position, VertexIndex: unassignedVertex})
	return len(sg.Nodes) - 1
}

func (sg *SquareGrid) controlIndex(x, y int) int {
	return x + y*sg.NodeCountX
}

func (sg *SquareGrid) newSquare(topLeft, topRight, bottomRight, bottomLeft int) Square {
	s := Square{
		TopLeft:      topLeft,
		TopRight:     topRight,
		BottomRight:  bottomRight,
		BottomLeft:   bottomLeft,
		CentreTop:    sg.Controls[topLeft].Right,
		CentreRight:  sg.Controls[bottomRight].Above,
		CentreBottom: sg.Controls[bottomLeft].Right,
		CentreLeft:   sg.Controls[bottomLeft].Above,
	}
	s.Configuration = Configuration(
		sg.Controls[topLeft].Active,
		sg.Controls[topRight].Active,
		sg.Controls[bottomRight].Active,
		sg.Controls[bottomLeft].Active,
	)
	return s
}

// SquareCountX is the number of squares along x, one less than the node count.
func (sg *SquareGrid) SquareCountX() int { return max(sg.NodeCountX-1, 0) }

func (sg *SquareGrid) SquareCountY() int { return max(sg.NodeCountY-1, 0) }

// Square returns the square whose bottom-left corner is control node (x, y).
func (sg *SquareGrid) Square(x, y int) *Square {
	common.AssertTrue(x >= 0 && x < sg.SquareCountX() && y >= 0 && y < sg.SquareCountY(), "square out of range")
	return &sg.Squares[x+y*sg.SquareCountX()]
}

// Control returns the control node mirroring grid tile (x, y).
func (sg *SquareGrid) Control(x, y int) *ControlNode {
	return &sg.Controls[sg.controlIndex(x, y)]
}

// point resolves a table entry of s to a node arena index.
func (sg *SquareGrid) point(s *Square, p SquarePoint) int {
	switch p {
	case PointTopLeft:
		return sg.Controls[s.TopLeft].Node
	case PointTopRight:
		return sg.Controls[s.TopRight].Node
	case PointBottomRight:
		return sg.Controls[s.BottomRight].Node
	case PointBottomLeft:
		return sg.Controls[s.BottomLeft].Node
	case PointCentreTop:
		return s.CentreTop
	case PointCentreRight:
		return s.CentreRight
	case PointCentreBottom:
		return s.CentreBottom
	default:
		return s.CentreLeft
	}
}
