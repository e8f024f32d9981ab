package marching

// SquarePoint names one of the eight points a square can emit.
type SquarePoint uint8

const (
	PointTopLeft SquarePoint = iota
	PointTopRight
	PointBottomRight
	PointBottomLeft
	PointCentreTop
	PointCentreRight
	PointCentreBottom
	PointCentreLeft
)

func (p SquarePoint) IsCorner() bool {
	return p <= PointBottomLeft
}

const FullConfiguration = 15

// Configuration packs the active corners into a 4-bit code.
func Configuration(topLeft, topRight, bottomRight, bottomLeft bool) int {
	c := 0
	if topLeft {
		c += 8
	}
	if topRight {
		c += 4
	}
	if bottomRight {
		c += 2
	}
	if bottomLeft {
		c++
	}
	return c
}

// configurationTable lists, per configuration, the outline of the wall
// polygon in clockwise order. Every list is star-shaped around its first
// point so it can be fanned from there.
var configurationTable = [16][]SquarePoint{
	0: nil,

	// one corner
	1: {PointCentreLeft, PointCentreBottom, PointBottomLeft},
	2: {PointBottomRight, PointCentreBottom, PointCentreRight},
	4: {PointTopRight, PointCentreRight, PointCentreTop},
	8: {PointTopLeft, PointCentreTop, PointCentreLeft},

	// two adjacent corners
	3:  {PointCentreRight, PointBottomRight, PointBottomLeft, PointCentreLeft},
	6:  {PointCentreTop, PointTopRight, PointBottomRight, PointCentreBottom},
	9:  {PointTopLeft, PointCentreTop, PointCentreBottom, PointBottomLeft},
	12: {PointTopLeft, PointTopRight, PointCentreRight, PointCentreLeft},

	// two opposite corners
	5:  {PointCentreTop, PointTopRight, PointCentreRight, PointCentreBottom, PointBottomLeft, PointCentreLeft},
	10: {PointTopLeft, PointCentreTop, PointCentreRight, PointBottomRight, PointCentreBottom, PointCentreLeft},

	// three corners
	7:  {PointCentreTop, PointTopRight, PointBottomRight, PointBottomLeft, PointCentreLeft},
	11: {PointTopLeft, PointCentreTop, PointCentreRight, PointBottomRight, PointBottomLeft},
	13: {PointTopLeft, PointTopRight, PointCentreRight, PointCentreBottom, PointBottomLeft},
	14: {PointTopLeft, PointTopRight, PointBottomRight, PointCentreBottom, PointCentreLeft},

	15: {PointTopLeft, PointTopRight, PointBottomRight, PointBottomLeft},
}

// ConfigurationPoints returns the fan points for configuration c.
func ConfigurationPoints(c int) []SquarePoint {
	if c < 0 || c >= len(configurationTable) {
		return nil
	}
	return configurationTable[c]
}

// FanTriangles returns the local triangle indices for an n-point fan
// pivoting on point 0. Fewer than three points yield nothing.
func FanTriangles(n int) [][3]int {
	if n < 3 {
		return nil
	}
	tris := make([][3]int, 0, n-2)
	for i := 1; i < n-1; i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris
}
