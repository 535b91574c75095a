package navmesh

import "github.com/arl/assertgo"

// BuildDistanceField computes, for every OpenSpan, distance_to_border:
// 0 for border spans (missing any axis or diagonal neighbor), and
// otherwise the Chebyshev-like distance computed by two sweep passes.
// Each axis or diagonal neighbor step adds a uniform +2, rather than
// the classical Recast +2-axis/+3-diagonal scheme, since both are
// treated as a single discrete step in this distance approximation.
func BuildDistanceField(ctx *BuildContext, ohf *OpenHeightfield) {
	assert.True(ctx != nil, "ctx should not be nil")
	ctx.StartTimer(TimerBuildDistanceField)
	defer ctx.StopTimer(TimerBuildDistanceField)

	n := len(ohf.Spans)
	for i := 0; i < n; i++ {
		s := &ohf.Spans[i]
		if isBorderSpan(ohf, s) {
			s.DistBorder = 0
		} else {
			s.DistBorder = regionMaxBorder
		}
	}

	// Pass 1: row-major forward.
	sweepDistancePass(ohf, false)
	// Pass 2: row-major reverse.
	sweepDistancePass(ohf, true)

	min, max := uint16(regionMaxBorder), uint16(0)
	for i := 0; i < n; i++ {
		d := ohf.Spans[i].DistBorder
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	ohf.MinBorderDist = min
	ohf.MaxBorderDist = max
}

// isBorderSpan reports whether s is missing any of its 4 axis or 4
// diagonal neighbors.
func isBorderSpan(ohf *OpenHeightfield, s *OpenSpan) bool {
	for d := Direction(0); d < 4; d++ {
		if s.Axis[d] == NoOpenSpan {
			return true
		}
		if ohf.DiagonalNeighbor(s, d) == NoOpenSpan {
			return true
		}
	}
	return false
}

// sweepDistancePass performs one full row-major sweep (or its reverse)
// over every OpenSpan, updating distance_to_border from the minimum of
// its 8 neighbors' distances plus 2.
func sweepDistancePass(ohf *OpenHeightfield, reverse bool) {
	visit := func(x, y int32) {
		for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; {
			s := ohf.Span(h)
			if s.DistBorder != 0 {
				d := s.DistBorder
				for dir := Direction(0); dir < 4; dir++ {
					if n := s.Axis[dir]; n != NoOpenSpan {
						d = u16Min(d, ohf.Span(n).DistBorder+2)
					}
					if dn := ohf.DiagonalNeighbor(s, dir); dn != NoOpenSpan {
						d = u16Min(d, ohf.Span(dn).DistBorder+2)
					}
				}
				s.DistBorder = d
			}
			h = s.Next
		}
	}

	if !reverse {
		for y := int32(0); y < ohf.Depth; y++ {
			for x := int32(0); x < ohf.Width; x++ {
				visit(x, y)
			}
		}
	} else {
		for y := ohf.Depth - 1; y >= 0; y-- {
			for x := ohf.Width - 1; x >= 0; x-- {
				visit(x, y)
			}
		}
	}
}

// boxBlurDistanceField optionally smooths the distance field with one
// 3x3 box-blur pass, averaging each span's distance with its axis and
// diagonal neighbors'. A positive radius only enables the pass: every
// positive radius gives the same one-cell blur, and no wider
// neighborhood is averaged.
func boxBlurDistanceField(ohf *OpenHeightfield, radius int32) {
	if radius <= 0 {
		return
	}
	orig := make([]uint16, len(ohf.Spans))
	for i := range ohf.Spans {
		orig[i] = ohf.Spans[i].DistBorder
	}

	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; h = ohf.Span(h).Next {
				s := ohf.Span(h)
				sum := int32(orig[h])
				count := int32(1)
				for dir := Direction(0); dir < 4; dir++ {
					if n := s.Axis[dir]; n != NoOpenSpan {
						sum += int32(orig[n])
						count++
					}
					if dn := ohf.DiagonalNeighbor(s, dir); dn != NoOpenSpan {
						sum += int32(orig[dn])
						count++
					}
				}
				s.DistBorder = uint16((sum + count/2) / count)
			}
		}
	}
}
