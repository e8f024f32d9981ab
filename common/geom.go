package common

// / Derives the signed xz-plane area of the triangle ABC, or the
// / relationship of line AB to point C.
// / @param[in]		a		Vertex A.
// / @param[in]		b		Vertex B.
// / @param[in]		c		Vertex C.
// / @return The signed area of the triangle, doubled.
func TriArea2D(a, b, c Vec3) float32 {
	abx := b[0] - a[0]
	abz := b[2] - a[2]
	acx := c[0] - a[0]
	acz := c[2] - a[2]
	return acx*abz - abx*acz
}

// PolyArea2D returns the signed xz-plane area of the ring pts as a fan of
// TriArea2D triangles around pts[0]. Concave rings are handled since the
// fan triangles outside the ring cancel.
func PolyArea2D(pts []Vec3) float32 {
	var area float32
	for i := 1; i+1 < len(pts); i++ {
		area += TriArea2D(pts[0], pts[i], pts[i+1])
	}
	return area / 2
}
