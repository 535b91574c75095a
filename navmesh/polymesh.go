package navmesh

import "github.com/arl/assertgo"

// Polygon is one convex (or triangular) cell of the final navigation
// mesh: a closed ring of global vertex indices, its centroid, and the
// indices of polygons it shares an edge with.
type Polygon struct {
	Verts     []int32
	Centroid  [3]float32
	Adjacency []int32
}

// PolyMesh is the final pipeline output: a deduplicated global vertex
// table and the polygon list.
type PolyMesh struct {
	Verts [][3]float32
	Polys []*Polygon
}

// BuildPolyMesh triangulates every contour ring, merges adjacent
// triangles up to maxVertsPerPoly, and computes the final adjacency
// graph and centroids. A region whose contour or triangulation cannot
// produce a valid ring is logged and skipped rather than aborting the
// whole build.
func BuildPolyMesh(ctx *BuildContext, contours []*Contour, maxVertsPerPoly int32) *PolyMesh {
	assert.True(ctx != nil, "ctx should not be nil")
	ctx.StartTimer(TimerBuildPolyMesh)
	defer ctx.StopTimer(TimerBuildPolyMesh)

	table := make(map[[3]float32]int32)
	var globalVerts [][3]float32
	var allPolys []*Polygon

	for _, c := range contours {
		if len(c.Verts) < 3 {
			ctx.Warningf("BuildPolyMesh: region %d's contour has fewer than 3 simplified vertices, skipping", c.Region)
			continue
		}

		ring := make([]int32, len(c.Verts))
		for i, v := range c.Verts {
			ring[i] = internVertex(table, &globalVerts, [3]float32{v.X, v.Y, v.Z})
		}

		tris, ok := triangulateRing(globalVerts, ring)
		if !ok {
			ctx.Warningf("BuildPolyMesh: triangulation failed for region %d, skipping", c.Region)
			continue
		}

		polys := make([]*Polygon, len(tris))
		for i, t := range tris {
			polys[i] = &Polygon{Verts: []int32{t[0], t[1], t[2]}}
		}

		if maxVertsPerPoly > 3 {
			ccw := polygonSignedArea2D(globalVerts, ring) > 0
			polys = mergeRegionPolygons(globalVerts, ccw, polys, maxVertsPerPoly)
		}

		allPolys = append(allPolys, polys...)
	}

	computeAdjacency(allPolys)
	for _, p := range allPolys {
		computeCentroid(globalVerts, p)
	}

	return &PolyMesh{Verts: globalVerts, Polys: allPolys}
}

// internVertex looks up v in table, extending globalVerts with a new
// entry on miss. Contour vertices are already exact, deterministically
// computed world coordinates, so an exact-match lookup on the
// coordinate itself is enough to dedupe them without quantizing to a
// grid first.
func internVertex(table map[[3]float32]int32, globalVerts *[][3]float32, v [3]float32) int32 {
	if idx, ok := table[v]; ok {
		return idx
	}
	idx := int32(len(*globalVerts))
	*globalVerts = append(*globalVerts, v)
	table[v] = idx
	return idx
}

// polygonSignedArea2D returns twice the signed XY area of the ring
// (global vertex indices); positive means counter-clockwise.
func polygonSignedArea2D(globalVerts [][3]float32, ring []int32) float32 {
	var a float32
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p, q := globalVerts[ring[i]], globalVerts[ring[j]]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a
}

// pointInOrOnTriangle2D reports whether p lies inside or on the
// boundary of triangle (a,b,c), independent of winding.
func pointInOrOnTriangle2D(ax, ay, bx, by, cx, cy, px, py float32) bool {
	d1 := TriArea2D(ax, ay, bx, by, px, py)
	d2 := TriArea2D(bx, by, cx, cy, px, py)
	d3 := TriArea2D(cx, cy, ax, ay, px, py)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// triangulateRing ear-clips ring (a list of global vertex indices) into
// triangles: among all valid ears, the one minimizing the squared
// distance between its two neighbors is cut first; if no valid ear
// remains before 3 vertices are left, the ring fails to triangulate.
func triangulateRing(globalVerts [][3]float32, ring []int32) ([][3]int32, bool) {
	n := len(ring)
	if n < 3 {
		return nil, false
	}
	idx := append([]int32(nil), ring...)
	ccwRing := polygonSignedArea2D(globalVerts, ring) > 0

	var tris [][3]int32
	guard := 0
	for len(idx) > 3 {
		guard++
		if guard > 2*n+16 {
			return nil, false
		}
		m := len(idx)
		best := -1
		var bestD2 float32
		for k := 0; k < m; k++ {
			ip := (k - 1 + m) % m
			in := (k + 1) % m
			a := globalVerts[idx[ip]]
			b := globalVerts[idx[k]]
			c := globalVerts[idx[in]]

			tipArea := TriArea2D(a[0], a[1], b[0], b[1], c[0], c[1])
			convex := (ccwRing && tipArea > 0) || (!ccwRing && tipArea < 0)
			if !convex {
				continue
			}

			valid := true
			for q := 0; q < m; q++ {
				if q == ip || q == k || q == in {
					continue
				}
				p := globalVerts[idx[q]]
				if pointInOrOnTriangle2D(a[0], a[1], b[0], b[1], c[0], c[1], p[0], p[1]) {
					valid = false
					break
				}
			}
			if !valid {
				continue
			}

			dx, dy := c[0]-a[0], c[1]-a[1]
			d2 := dx*dx + dy*dy
			if best == -1 || d2 < bestD2 {
				best, bestD2 = k, d2
			}
		}
		if best == -1 {
			return nil, false
		}

		ip := (best - 1 + m) % m
		in := (best + 1) % m
		tris = append(tris, [3]int32{idx[ip], idx[best], idx[in]})

		next := make([]int32, 0, m-1)
		next = append(next, idx[:best]...)
		next = append(next, idx[best+1:]...)
		idx = next
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int32{idx[0], idx[1], idx[2]})
	}
	return tris, true
}

// findSharedEdge looks for indices i (in a) and j (in b) such that
// a.Verts[i],a.Verts[i+1] equal b.Verts[j+1],b.Verts[j]: the same edge
// traversed in opposite directions.
func findSharedEdge(a, b *Polygon) (i, j int, ok bool) {
	na, nb := len(a.Verts), len(b.Verts)
	for ii := 0; ii < na; ii++ {
		i2 := (ii + 1) % na
		for jj := 0; jj < nb; jj++ {
			j2 := (jj + 1) % nb
			if a.Verts[ii] == b.Verts[j2] && a.Verts[i2] == b.Verts[jj] {
				return ii, jj, true
			}
		}
	}
	return 0, 0, false
}

// spliceRing merges b into a at the shared edge (i in a, j in b),
// producing the combined ring starting at a's vertex following the
// shared edge.
func spliceRing(a, b *Polygon, i, j int) []int32 {
	na, nb := len(a.Verts), len(b.Verts)
	i2 := (i + 1) % na

	merged := make([]int32, 0, na+nb-2)
	cur := i2
	for c := 0; c < na; c++ {
		merged = append(merged, a.Verts[cur])
		cur = (cur + 1) % na
	}
	for k := 1; k < nb-1; k++ {
		merged = append(merged, b.Verts[(j+1+k)%nb])
	}
	return merged
}

// convexAt reports whether ring[pos] remains convex (left-or-collinear
// relative to its neighbors, given the ring's winding) — the
// admissibility check applied to both corners of a candidate splice.
func convexAt(globalVerts [][3]float32, ring []int32, pos int, ccwRing bool) bool {
	n := len(ring)
	prev := globalVerts[ring[(pos-1+n)%n]]
	cur := globalVerts[ring[pos]]
	next := globalVerts[ring[(pos+1)%n]]
	area := TriArea2D(prev[0], prev[1], cur[0], cur[1], next[0], next[1])
	if ccwRing {
		return area >= 0
	}
	return area <= 0
}

// mergeRegionPolygons repeatedly merges the admissible pair of polygons
// sharing the longest edge, until no admissible merge remains.
func mergeRegionPolygons(globalVerts [][3]float32, ccwRing bool, polys []*Polygon, maxVertsPerPoly int32) []*Polygon {
	for {
		bestA, bestB := -1, -1
		var bestMerged []int32
		var bestLenSq float32 = -1

		for a := 0; a < len(polys); a++ {
			for b := 0; b < len(polys); b++ {
				if a == b {
					continue
				}
				A, B := polys[a], polys[b]
				if len(A.Verts)+len(B.Verts)-2 > int(maxVertsPerPoly) {
					continue
				}
				i, j, ok := findSharedEdge(A, B)
				if !ok {
					continue
				}
				merged := spliceRing(A, B, i, j)
				na := len(A.Verts)
				if !convexAt(globalVerts, merged, 0, ccwRing) || !convexAt(globalVerts, merged, na-1, ccwRing) {
					continue
				}
				v1 := globalVerts[A.Verts[i]]
				v2 := globalVerts[A.Verts[(i+1)%na]]
				dx, dy := v2[0]-v1[0], v2[1]-v1[1]
				l2 := dx*dx + dy*dy
				if l2 > bestLenSq {
					bestLenSq = l2
					bestA, bestB = a, b
					bestMerged = merged
				}
			}
		}
		if bestA == -1 {
			break
		}
		polys[bestA] = &Polygon{Verts: bestMerged}
		polys = append(polys[:bestB], polys[bestB+1:]...)
	}
	return polys
}

// computeAdjacency records, for each polygon P, the index of every
// polygon Q sharing an edge with P.
func computeAdjacency(polys []*Polygon) {
	for pi, P := range polys {
		na := len(P.Verts)
		for pj, Q := range polys {
			if pi == pj {
				continue
			}
			nb := len(Q.Verts)
			shared := false
			for i := 0; i < na && !shared; i++ {
				u, v := P.Verts[i], P.Verts[(i+1)%na]
				for j := 0; j < nb; j++ {
					qu, qv := Q.Verts[j], Q.Verts[(j+1)%nb]
					if (qu == v && qv == u) || (qu == u && qv == v) {
						shared = true
						break
					}
				}
			}
			if shared {
				P.Adjacency = append(P.Adjacency, int32(pj))
			}
		}
	}
}

// computeCentroid computes P's area-weighted XY centroid and its Z as
// the average of its minimum and maximum vertex Z.
func computeCentroid(globalVerts [][3]float32, p *Polygon) {
	n := len(p.Verts)
	if n == 0 {
		return
	}
	var cx, cy, areaSum float32
	minZ := globalVerts[p.Verts[0]][2]
	maxZ := minZ
	for i := 0; i < n; i++ {
		a := globalVerts[p.Verts[i]]
		b := globalVerts[p.Verts[(i+1)%n]]
		cross := a[0]*b[1] - b[0]*a[1]
		areaSum += cross
		cx += (a[0] + b[0]) * cross
		cy += (a[1] + b[1]) * cross
		if a[2] < minZ {
			minZ = a[2]
		}
		if a[2] > maxZ {
			maxZ = a[2]
		}
	}
	if areaSum != 0 {
		cx /= 3 * areaSum
		cy /= 3 * areaSum
	} else {
		var sx, sy float32
		for _, gi := range p.Verts {
			v := globalVerts[gi]
			sx += v[0]
			sy += v[1]
		}
		cx = sx / float32(n)
		cy = sy / float32(n)
	}
	p.Centroid = [3]float32{cx, cy, (minZ + maxZ) / 2}
}
