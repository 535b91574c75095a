package navmesh

import "github.com/arl/assertgo"

// This file implements two optional area-classification passes a caller
// may apply to a Heightfield before BuildOpenHeightfield: walkable-area
// erosion and convex-volume area marking. Neither touches the core
// voxelize/compact/region/contour/mesh pipeline directly.

// ErodeWalkableArea shrinks the walkable area inward by radius voxels,
// marking any WALKABLE span NullArea if it (or a column neighbor within
// radius) touches an unwalkable or missing column. Runs on the solid
// heightfield directly, before the open heightfield is derived, since a
// HeightSpan already carries the Area attribute needed to seed the
// distance sweep.
func ErodeWalkableArea(ctx *BuildContext, radius int32, hf *Heightfield) {
	assert.True(ctx != nil, "ctx should not be nil")
	if radius <= 0 {
		return
	}
	ctx.StartTimer(TimerErodeArea)
	defer ctx.StopTimer(TimerErodeArea)

	dist := make(map[SpanHandle]uint8, len(hf.Spans))
	const maxDist = 0xff

	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				if s.Area == NullArea {
					dist[h] = 0
				} else {
					touching := 0
					for dir := Direction(0); dir < 4; dir++ {
						nx, ny := x+dir.OffsetX(), y+dir.OffsetY()
						if nx < 0 || ny < 0 || nx >= hf.Width || ny >= hf.Depth {
							continue
						}
						if columnOverlapsWalkable(hf, nx, ny, s) {
							touching++
						}
					}
					if touching < 4 {
						dist[h] = 0
					} else {
						dist[h] = maxDist
					}
				}
				h = s.Next
			}
		}
	}

	relax := func(x, y int32) {
		for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
			s := hf.span(h)
			if s.Area != NullArea {
				d := dist[h]
				for dir := Direction(0); dir < 4; dir++ {
					nx, ny := x+dir.OffsetX(), y+dir.OffsetY()
					if nx < 0 || ny < 0 || nx >= hf.Width || ny >= hf.Depth {
						continue
					}
					for n := hf.Columns[hf.column(nx, ny)]; n != NoSpan; n = hf.span(n).Next {
						ns := hf.span(n)
						if iAbs(ns.Max-s.Max) > 1 {
							continue
						}
						nd := dist[n]
						if nd < 0xff-2 {
							nd += 2
						} else {
							nd = 0xff
						}
						if nd < d {
							d = nd
						}
					}
				}
				dist[h] = d
			}
			h = s.Next
		}
	}

	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			relax(x, y)
		}
	}
	for y := hf.Depth - 1; y >= 0; y-- {
		for x := hf.Width - 1; x >= 0; x-- {
			relax(x, y)
		}
	}

	thr := uint8(iMin(int32(radius)*2, 0xff))
	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				if dist[h] < thr {
					s.Area = NullArea
				}
				h = s.Next
			}
		}
	}
}

// columnOverlapsWalkable reports whether column (x,y) has any walkable
// span whose top is within one voxel of s's top, used as a coarse
// adjacency test for erosion seeding.
func columnOverlapsWalkable(hf *Heightfield, x, y int32, s *HeightSpan) bool {
	for h := hf.Columns[hf.column(x, y)]; h != NoSpan; h = hf.span(h).Next {
		ns := hf.span(h)
		if ns.Area != NullArea && iAbs(ns.Max-s.Max) <= 1 {
			return true
		}
	}
	return false
}

// ConvexVolume is a convex polygon in the XY (ground) plane with a
// vertical slab [MinY, MaxY] along the Z (up) axis, used to overwrite
// the area id of solid spans enclosed by it.
type ConvexVolume struct {
	Verts  [][2]float32 // XY outline, any winding
	MinY   float32      // lower world Z of the slab
	MaxY   float32      // upper world Z of the slab
	AreaID Area
}

// MarkConvexPolyArea overwrites the area id of every WALKABLE span whose
// column center lies inside vol's XY outline and whose voxel range
// overlaps the Z slab [vol.MinY, vol.MaxY].
func MarkConvexPolyArea(hf *Heightfield, vol ConvexVolume) {
	if len(vol.Verts) < 3 {
		return
	}
	minIY := int32((vol.MinY - hf.BoundMin[2]) / hf.CellHeight)
	maxIY := int32((vol.MaxY - hf.BoundMin[2]) / hf.CellHeight)

	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			cx := hf.BoundMin[0] + (float32(x)+0.5)*hf.CellSize
			cz := hf.BoundMin[1] + (float32(y)+0.5)*hf.CellSize
			if !pointInPoly2D(vol.Verts, cx, cz) {
				continue
			}
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				if s.Area != NullArea && s.Max >= minIY && s.Min <= maxIY {
					s.Area = vol.AreaID
				}
				h = s.Next
			}
		}
	}
}

// pointInPoly2D is a standard even-odd-rule point-in-polygon test.
func pointInPoly2D(poly [][2]float32, px, py float32) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if ((yi > py) != (yj > py)) &&
			(px < (xj-xi)*(py-yi)/(yj-yi)+xi) {
			inside = !inside
		}
	}
	return inside
}
