package navmesh

import "github.com/arl/assertgo"

// ContourVertex is one point along a region's border, carrying the
// region on each side of the edge it was emitted for.
type ContourVertex struct {
	X, Y, Z        float32
	ExternalRegion RegionID
	Internal       RegionID
	RawIndex       int
}

// Contour is one region's closed boundary ring, in both raw (one vertex
// per border-voxel corner) and simplified (portal/deviation-driven)
// form.
type Contour struct {
	Region RegionID
	Raw    []ContourVertex
	Verts  []ContourVertex
}

// BuildContours traces and simplifies every region's boundary: for each
// span bordering a different region, walk the border clockwise
// (rotating into unconsumed border directions, stepping across axis
// neighbors otherwise) to build a raw ring of voxel-corner vertices,
// then collapse that ring down to a small simplified polygon.
func BuildContours(ctx *BuildContext, ohf *OpenHeightfield, edgeMaxDeviation, maxEdgeLength float32) []*Contour {
	assert.True(ctx != nil, "ctx should not be nil")
	ctx.StartTimer(TimerBuildContours)
	defer ctx.StopTimer(TimerBuildContours)

	markBorderSpans(ohf)

	ctx.StartTimer(TimerBuildContoursTrace)
	var contours []*Contour
	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; {
				s := ohf.Span(h)
				if s.Region != NullRegion {
					for d := Direction(0); d < 4; d++ {
						if s.NeighborInDiffRegion[d] {
							raw := walkContour(ohf, h, d)
							if len(raw) > 0 {
								contours = append(contours, &Contour{Region: s.Region, Raw: raw})
							}
						}
					}
				}
				h = s.Next
			}
		}
	}
	ctx.StopTimer(TimerBuildContoursTrace)

	ctx.StartTimer(TimerBuildContoursSimplify)
	edgeMaxDevSq := edgeMaxDeviation * edgeMaxDeviation
	for _, c := range contours {
		c.Verts = simplifyContour(c.Raw, edgeMaxDevSq, maxEdgeLength)
	}
	ctx.StopTimer(TimerBuildContoursSimplify)

	return contours
}

// markBorderSpans sets neighbor_in_diff_region for every axis direction
// of every non-null span, then clears all four flags on a span whose
// every neighbor differs from its own region: such a span is an
// isolated single-voxel speck rather than part of a traceable border
// and would otherwise seed a degenerate one-cell, four-vertex ring.
func markBorderSpans(ohf *OpenHeightfield) {
	for i := range ohf.Spans {
		s := &ohf.Spans[i]
		if s.Region == NullRegion {
			continue
		}
		for d := Direction(0); d < 4; d++ {
			nr := NullRegion
			if n := s.Axis[d]; n != NoOpenSpan {
				nr = ohf.Span(n).Region
			}
			s.NeighborInDiffRegion[d] = nr != s.Region
		}
		if s.NeighborInDiffRegion[0] && s.NeighborInDiffRegion[1] && s.NeighborInDiffRegion[2] && s.NeighborInDiffRegion[3] {
			s.NeighborInDiffRegion = [4]bool{}
		}
	}
}

// walkContour traces one raw contour ring starting at (startSpan,
// startDir), clearing each neighbor_in_diff_region flag as it is
// consumed so no edge is walked twice.
func walkContour(ohf *OpenHeightfield, startSpan OpenSpanHandle, startDir Direction) []ContourVertex {
	var raw []ContourVertex
	dir := startDir
	span := startSpan

	for iter := 0; iter < 65535; iter++ {
		s := ohf.Span(span)
		if s.NeighborInDiffRegion[dir] {
			x, y, z := cornerVertex(ohf, s, dir)
			ext := NullRegion
			if n := s.Axis[dir]; n != NoOpenSpan {
				ext = ohf.Span(n).Region
			}
			raw = append(raw, ContourVertex{X: x, Y: y, Z: z, ExternalRegion: ext, Internal: s.Region, RawIndex: len(raw)})
			s.NeighborInDiffRegion[dir] = false
			dir = dir.RotateCW()
		} else {
			span = s.Axis[dir]
			dir = dir.RotateCCW()
		}
		if span == startSpan && dir == startDir {
			break
		}
	}
	return raw
}

// cornerHeight is the maximum floor among s, its axis-neighbor in dir,
// its axis-neighbor in dir+1, and the diagonal between them.
func cornerHeight(ohf *OpenHeightfield, s *OpenSpan, dir Direction) int32 {
	h := s.Min
	if n := s.Axis[dir]; n != NoOpenSpan {
		h = iMax(h, ohf.Span(n).Min)
	}
	if n := s.Axis[dir.RotateCW()]; n != NoOpenSpan {
		h = iMax(h, ohf.Span(n).Min)
	}
	if dn := ohf.DiagonalNeighbor(s, dir); dn != NoOpenSpan {
		h = iMax(h, ohf.Span(dn).Min)
	}
	return h
}

// cornerVertex computes the world-space corner coordinate for a vertex
// emitted in direction dir at span s.
func cornerVertex(ohf *OpenHeightfield, s *OpenSpan, dir Direction) (x, y, z float32) {
	h := cornerHeight(ohf, s, dir)
	x = ohf.BoundMin[0] + ohf.CellSize*float32(s.X)
	y = ohf.BoundMin[1] + ohf.CellSize*float32(s.Y) + ohf.CellSize
	z = ohf.BoundMin[2] + ohf.CellHeight*float32(h)

	switch dir {
	case DirMinusX:
		y -= ohf.CellSize
	case DirMinusY:
		x += ohf.CellSize
		y -= ohf.CellSize
	case DirPlusX:
		x += ohf.CellSize
	case DirPlusY:
	}
	return x, y, z
}

// simplifyContour runs the five-step simplification pipeline over one
// raw ring: pick portal/island endpoints, reinsert raw vertices that
// deviate too far from the simplified edges, subdivide edges longer
// than maxEdgeLength, then drop adjacent duplicates.
func simplifyContour(raw []ContourVertex, edgeMaxDevSq, maxEdgeLength float32) []ContourVertex {
	if len(raw) == 0 {
		return nil
	}

	hasPortal := false
	for _, v := range raw {
		if v.ExternalRegion != NullRegion {
			hasPortal = true
			break
		}
	}

	var simplified []ContourVertex
	if hasPortal {
		n := len(raw)
		for i := 0; i < n; i++ {
			prev := raw[(i-1+n)%n]
			cur := raw[i]
			if cur.ExternalRegion != prev.ExternalRegion {
				simplified = append(simplified, cur)
			}
		}
		if len(simplified) == 0 {
			simplified = islandEndpoints(raw)
		}
	} else {
		simplified = islandEndpoints(raw)
	}

	simplified = reinsertNullRegionVertices(raw, simplified, edgeMaxDevSq)
	simplified = enforceMaxEdgeLength(simplified, maxEdgeLength)
	simplified = dedupeAdjacentVerts(simplified)
	return simplified
}

// islandEndpoints keeps the lexicographically minimum and maximum raw
// vertices (X then Y). Used for a region with no portal edges at all,
// i.e. one whose whole border faces NULL_REGION.
func islandEndpoints(raw []ContourVertex) []ContourVertex {
	lessXY := func(a, b ContourVertex) bool {
		return a.X < b.X || (a.X == b.X && a.Y < b.Y)
	}
	minIdx, maxIdx := 0, 0
	for i, v := range raw {
		if lessXY(v, raw[minIdx]) {
			minIdx = i
		}
		if lessXY(raw[maxIdx], v) {
			maxIdx = i
		}
	}
	if minIdx == maxIdx {
		return []ContourVertex{raw[minIdx]}
	}
	return []ContourVertex{raw[minIdx], raw[maxIdx]}
}

// reinsertNullRegionVertices handles edges bordering NULL_REGION (i.e.
// not a portal edge already fixed above): for each such simplified
// edge, reinsert the raw vertex farthest from the edge's midpoint
// whenever that distance² is at least edgeMaxDevSq, repeating to a fixed
// point. The distance is measured to the edge's midpoint rather than to
// the segment itself, because otherwise a straight run of equidistant
// points would be pruned down to just its two endpoints.
func reinsertNullRegionVertices(raw, simplified []ContourVertex, edgeMaxDevSq float32) []ContourVertex {
	if len(simplified) < 2 || len(raw) == 0 {
		return simplified
	}
	nr := len(raw)

	changed := true
	for changed {
		changed = false
		n := len(simplified)
		for i := 0; i < n; i++ {
			a := simplified[i]
			b := simplified[(i+1)%n]
			if a.ExternalRegion != NullRegion {
				continue
			}

			mx := (a.X + b.X) / 2
			my := (a.Y + b.Y) / 2

			worstIdx := -1
			var worstDist float32 = -1
			for k := (a.RawIndex + 1) % nr; k != b.RawIndex; k = (k + 1) % nr {
				v := raw[k]
				dx, dy := v.X-mx, v.Y-my
				d2 := dx*dx + dy*dy
				if d2 > worstDist {
					worstDist = d2
					worstIdx = k
				}
			}

			if worstIdx >= 0 && worstDist >= edgeMaxDevSq {
				nv := raw[worstIdx]
				next := make([]ContourVertex, 0, n+1)
				next = append(next, simplified[:i+1]...)
				next = append(next, nv)
				next = append(next, simplified[i+1:]...)
				simplified = next
				changed = true
				break
			}
		}
	}
	return simplified
}

// enforceMaxEdgeLength subdivides any simplified edge touching
// NULL_REGION whose squared length exceeds maxEdgeLength².
func enforceMaxEdgeLength(simplified []ContourVertex, maxEdgeLength float32) []ContourVertex {
	if maxEdgeLength <= 0 || len(simplified) < 2 {
		return simplified
	}
	maxLenSq := maxEdgeLength * maxEdgeLength

	changed := true
	for changed {
		changed = false
		n := len(simplified)
		for i := 0; i < n; i++ {
			a := simplified[i]
			b := simplified[(i+1)%n]
			if a.ExternalRegion != NullRegion && b.ExternalRegion != NullRegion {
				continue
			}
			dx, dy := b.X-a.X, b.Y-a.Y
			if dx*dx+dy*dy <= maxLenSq {
				continue
			}
			mid := ContourVertex{
				X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2,
				ExternalRegion: a.ExternalRegion, Internal: a.Internal, RawIndex: -1,
			}
			next := make([]ContourVertex, 0, n+1)
			next = append(next, simplified[:i+1]...)
			next = append(next, mid)
			next = append(next, simplified[i+1:]...)
			simplified = next
			changed = true
			break
		}
	}
	return simplified
}

// dedupeAdjacentVerts removes consecutive (and wraparound) coordinate
// duplicates.
func dedupeAdjacentVerts(in []ContourVertex) []ContourVertex {
	if len(in) < 2 {
		return in
	}
	out := make([]ContourVertex, 0, len(in))
	for _, v := range in {
		if len(out) == 0 {
			out = append(out, v)
			continue
		}
		last := out[len(out)-1]
		if last.X != v.X || last.Y != v.Y || last.Z != v.Z {
			out = append(out, v)
		}
	}
	if len(out) > 1 {
		last := out[len(out)-1]
		first := out[0]
		if last.X == first.X && last.Y == first.Y && last.Z == first.Z {
			out = out[:len(out)-1]
		}
	}
	return out
}
