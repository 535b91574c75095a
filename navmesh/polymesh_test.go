package navmesh

import "testing"

func TestTriangulateRingSquare(t *testing.T) {
	verts := [][3]float32{
		{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0},
	}
	ring := []int32{0, 1, 2, 3}
	tris, ok := triangulateRing(verts, ring)
	if !ok {
		t.Fatalf("triangulateRing failed on a convex square")
	}
	if len(tris) != 2 {
		t.Fatalf("triangulateRing(square) = %d triangles, want 2", len(tris))
	}
}

// TestTriangulateRingConcave exercises the S3 pillar-hole scenario's
// shape: an L-shaped (concave) ring, which the no-vertex-inside ear
// test must route around.
func TestTriangulateRingConcave(t *testing.T) {
	// L-shape: a 4x4 square missing its top-right 2x2 quadrant.
	verts := [][3]float32{
		{0, 0, 0}, {4, 0, 0}, {4, 2, 0}, {2, 2, 0}, {2, 4, 0}, {0, 4, 0},
	}
	ring := []int32{0, 1, 2, 3, 4, 5}
	tris, ok := triangulateRing(verts, ring)
	if !ok {
		t.Fatalf("triangulateRing failed on a concave L-shape")
	}
	if len(tris) != len(ring)-2 {
		t.Fatalf("triangulateRing(L-shape) = %d triangles, want %d", len(tris), len(ring)-2)
	}
}

func TestPolygonSignedArea2DWindingSign(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0}}
	ccw := []int32{0, 1, 2, 3}
	if polygonSignedArea2D(verts, ccw) <= 0 {
		t.Fatalf("CCW square should have positive signed area")
	}
	cw := []int32{0, 3, 2, 1}
	if polygonSignedArea2D(verts, cw) >= 0 {
		t.Fatalf("CW square should have negative signed area")
	}
}

func TestComputeCentroidOfSquare(t *testing.T) {
	verts := [][3]float32{{0, 0, 1}, {2, 0, 1}, {2, 2, 3}, {0, 2, 3}}
	p := &Polygon{Verts: []int32{0, 1, 2, 3}}
	computeCentroid(verts, p)
	if p.Centroid[0] != 1 || p.Centroid[1] != 1 {
		t.Fatalf("centroid XY = (%v,%v), want (1,1)", p.Centroid[0], p.Centroid[1])
	}
	if p.Centroid[2] != 2 {
		t.Fatalf("centroid Z = %v, want 2 (avg of min/max edge-endpoint Z)", p.Centroid[2])
	}
}

// TestComputeAdjacencySymmetric checks that polygon adjacency is
// symmetric.
func TestComputeAdjacencySymmetric(t *testing.T) {
	// Two triangles sharing edge (1,2): P=(0,1,2), Q=(1,3,2) with the
	// shared edge traversed in opposite directions between them.
	a := &Polygon{Verts: []int32{0, 1, 2}}
	b := &Polygon{Verts: []int32{1, 3, 2}}
	polys := []*Polygon{a, b}
	computeAdjacency(polys)

	aHasB := false
	for _, idx := range a.Adjacency {
		if idx == 1 {
			aHasB = true
		}
	}
	bHasA := false
	for _, idx := range b.Adjacency {
		if idx == 0 {
			bHasA = true
		}
	}
	if aHasB != bHasA {
		t.Fatalf("adjacency not symmetric: a.Adjacency has b=%v, b.Adjacency has a=%v", aHasB, bHasA)
	}
	if !aHasB {
		t.Fatalf("expected a and b (sharing edge 1-2) to be adjacent")
	}
}

func TestInternVertexDedups(t *testing.T) {
	table := make(map[[3]float32]int32)
	var verts [][3]float32
	i1 := internVertex(table, &verts, [3]float32{1, 2, 3})
	i2 := internVertex(table, &verts, [3]float32{4, 5, 6})
	i3 := internVertex(table, &verts, [3]float32{1, 2, 3})
	if i1 != i3 {
		t.Fatalf("internVertex should dedup identical coordinates: got %d and %d", i1, i3)
	}
	if i1 == i2 {
		t.Fatalf("internVertex should assign distinct indices to distinct coordinates")
	}
	if len(verts) != 2 {
		t.Fatalf("expected 2 unique vertices in the table, got %d", len(verts))
	}
}

func TestSpliceRingProducesConvexQuad(t *testing.T) {
	// Two triangles forming a unit square, split along its diagonal.
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	a := &Polygon{Verts: []int32{0, 1, 2}}
	b := &Polygon{Verts: []int32{0, 2, 3}}
	i, j, ok := findSharedEdge(a, b)
	if !ok {
		t.Fatalf("expected a shared edge between the two triangles")
	}
	merged := spliceRing(a, b, i, j)
	if len(merged) != 4 {
		t.Fatalf("splicing two triangles along a shared edge should yield a quad, got %d verts", len(merged))
	}
}
