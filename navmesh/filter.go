package navmesh

// This file implements the solid heightfield's post-rasterization
// filters.

// FilterLowHangingWalkableObstacles marks a span WALKABLE if it is
// UNWALKABLE but sits directly above a WALKABLE span whose top is within
// walkableClimb voxels of its own, letting traversal flow over low curbs. Must run
// before FilterLedgeSpans, which can otherwise override its effect.
func FilterLowHangingWalkableObstacles(ctx *BuildContext, walkableClimb int32, hf *Heightfield) {
	ctx.StartTimer(TimerFilter)
	defer ctx.StopTimer(TimerFilter)

	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			var prevWalkable bool
			var prevMax int32
			var prevArea Area
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				walkable := s.Area != NullArea
				if !walkable && prevWalkable {
					if iAbs(s.Max-prevMax) <= walkableClimb {
						s.Area = prevArea
					}
				}
				prevWalkable = s.Area != NullArea
				prevMax = s.Max
				prevArea = s.Area
				h = s.Next
			}
		}
	}
}

// filterLowHeightSpans marks a WALKABLE span unwalkable when the gap to
// the next span (or +inf) is below min_traversable_height.
func filterLowHeightSpans(hf *Heightfield, minTraversableHeightVoxels int32) {
	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				if s.Area != NullArea {
					ceiling := int32(1 << 30)
					if s.Next != NoSpan {
						ceiling = hf.span(s.Next).Min
					}
					if ceiling-s.Max < minTraversableHeightVoxels {
						s.Area = NullArea
					}
				}
				h = s.Next
			}
		}
	}
}

// FilterLedgeSpans marks a WALKABLE span unwalkable when any axis
// neighbor's floor drops more than walkableClimb below it, or when the
// spread between accessible-neighbor floors exceeds walkableClimb.
// This filter is known to occasionally over-filter legitimate ledge
// spans; validated here against staircase scenarios in
// navmesh/build_test.go that stay within and exceed
// max_traversable_step.
func FilterLedgeSpans(ctx *BuildContext, walkableHeight, walkableClimb int32, hf *Heightfield) {
	ctx.StartTimer(TimerFilter)
	defer ctx.StopTimer(TimerFilter)

	const maxHeight = int32(1 << 20)
	w, d := hf.Width, hf.Depth

	for y := int32(0); y < d; y++ {
		for x := int32(0); x < w; x++ {
			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; {
				s := hf.span(h)
				if s.Area == NullArea {
					h = s.Next
					continue
				}

				bot := s.Max
				top := maxHeight
				if s.Next != NoSpan {
					top = hf.span(s.Next).Min
				}

				minh := maxHeight
				asmin := s.Max
				asmax := s.Max

				for dir := Direction(0); dir < 4; dir++ {
					dx := x + dir.OffsetX()
					dy := y + dir.OffsetY()
					if dx < 0 || dy < 0 || dx >= w || dy >= d {
						minh = iMin(minh, -walkableClimb-bot)
						continue
					}

					ns := hf.Columns[hf.column(dx, dy)]
					nbot := -walkableClimb
					ntop := maxHeight
					if ns != NoSpan {
						ntop = hf.span(ns).Min
					}
					if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
						minh = iMin(minh, nbot-bot)
					}

					for n := ns; n != NoSpan; {
						ns := hf.span(n)
						nbot = ns.Max
						ntop = maxHeight
						if ns.Next != NoSpan {
							ntop = hf.span(ns.Next).Min
						}
						if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
							minh = iMin(minh, nbot-bot)
							if iAbs(nbot-bot) <= walkableClimb {
								asmin = iMin(asmin, nbot)
								asmax = iMax(asmax, nbot)
							}
						}
						n = ns.Next
					}
				}

				if minh < -walkableClimb {
					s.Area = NullArea
				} else if asmax-asmin > walkableClimb {
					s.Area = NullArea
				}
				h = s.Next
			}
		}
	}
}
