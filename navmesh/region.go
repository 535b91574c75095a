package navmesh

import "github.com/arl/assertgo"

// Region is one maximal connected component of open spans sharing a
// region ID, assembled after watershed segmentation: its span count,
// the IDs of every region it borders, and the set of regions it
// overlaps in the column dimension.
type Region struct {
	ID          RegionID
	SpanCount   int32
	Connections []RegionID
	Overlaps    map[RegionID]bool
	removed     bool
}

// BuildRegions runs watershed segmentation with expansion over ohf:
// spans are flooded outward from local distance-field maxima in
// descending distance-to-border order, each flood claiming a new
// region ID, with the flood front re-expanded at every level step so
// that narrow passages stay connected to their nearest basin. Small
// unconnected regions are discarded, small regions are merged into
// their cheapest neighbor, and surviving IDs are compacted before
// return.
func BuildRegions(ctx *BuildContext, ohf *OpenHeightfield, borderSize, minUnconnectedSize, minMergeSize int32, conservative bool) []*Region {
	assert.True(ctx != nil, "ctx should not be nil")
	ctx.StartTimer(TimerBuildRegions)
	defer ctx.StopTimer(TimerBuildRegions)

	for i := range ohf.Spans {
		ohf.Spans[i].Region = NullRegion
		ohf.Spans[i].DistCore = 0
	}

	// borderSize was already consumed by eroding the walkable area before
	// the open heightfield's distance field was built (see BuildNavMesh),
	// so ohf.MinBorderDist already reflects that shrinkage; adding
	// borderSize again here would shrink the navmesh by it twice.
	minDist := ohf.MinBorderDist
	level := ohf.MaxBorderDist
	nextRegionID := RegionID(1)

	expandIter := 4 + 2*borderSize

	for level > minDist {
		flooded := collectSpans(ohf, level, true)
		if nextRegionID > 1 {
			expandRegions(ohf, flooded, conservative, expandIter)
		}
		fillTo := u16Max(sub16(level, 2), minDist)
		for _, h := range flooded {
			s := ohf.Span(h)
			if s.Region != NullRegion {
				continue
			}
			if floodNewRegion(ohf, h, fillTo, nextRegionID) {
				nextRegionID++
			}
		}
		level = u16Max(sub16(level, 2), ohf.MinBorderDist)
	}

	remaining := collectSpans(ohf, minDist, true)
	finalIter := (4 + 2*borderSize) * 8
	if minDist == 0 {
		finalIter = 1 << 30
	}
	expandRegions(ohf, remaining, conservative, finalIter)

	regions := buildRegionTable(ohf, nextRegionID-1)
	removeSmallUnconnectedRegions(regions, minUnconnectedSize)
	mergeSmallRegions(ohf, regions, minMergeSize)
	regions = remapRegionIDs(ohf, regions)
	reassignBorders(ohf)

	return regions
}

// sub16 subtracts from a uint16 level without underflowing past 0.
func sub16(a uint16, b uint16) uint16 {
	if a < b {
		return 0
	}
	return a - b
}

// collectSpans returns, in row-major order, every OpenSpan whose
// distance_to_border is >= minDist, optionally restricted to those still
// unassigned.
func collectSpans(ohf *OpenHeightfield, minDist uint16, onlyUnassigned bool) []OpenSpanHandle {
	var out []OpenSpanHandle
	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; {
				s := ohf.Span(h)
				if s.DistBorder >= minDist && (!onlyUnassigned || s.Region == NullRegion) {
					out = append(out, h)
				}
				h = s.Next
			}
		}
	}
	return out
}

// expandRegions iterates the flooded set, assigning each unassigned span
// the region of its cheapest already-assigned axis neighbor. Assignments
// within one pass are computed against the pass's starting state
// (double-buffered) so the result does not depend on iteration order
// within the pass.
func expandRegions(ohf *OpenHeightfield, flooded []OpenSpanHandle, conservative bool, maxIter int32) {
	type pending struct {
		region RegionID
		dist   uint16
	}
	for iter := int32(0); iter < maxIter; iter++ {
		updates := make(map[OpenSpanHandle]pending)
		for _, h := range flooded {
			s := ohf.Span(h)
			if s.Region != NullRegion {
				continue
			}
			var best OpenSpanHandle = NoOpenSpan
			var bestCost uint16
			for dir := Direction(0); dir < 4; dir++ {
				n := s.Axis[dir]
				if n == NoOpenSpan {
					continue
				}
				ns := ohf.Span(n)
				if ns.Region == NullRegion {
					continue
				}
				if conservative && !hasTwoNeighborsInRegion(ohf, n, ns.Region) {
					continue
				}
				cost := ns.DistCore + 2
				if best == NoOpenSpan || cost < bestCost {
					best, bestCost = n, cost
				}
			}
			if best != NoOpenSpan {
				updates[h] = pending{region: ohf.Span(best).Region, dist: bestCost}
			}
		}
		if len(updates) == 0 {
			break
		}
		for h, p := range updates {
			s := ohf.Span(h)
			s.Region = p.region
			s.DistCore = p.dist
		}
	}
}

// hasTwoNeighborsInRegion reports whether span h has at least 2 axis
// neighbors already belonging to region: the conservative-expansion
// guard against claiming a span through a single-span-wide filament.
func hasTwoNeighborsInRegion(ohf *OpenHeightfield, h OpenSpanHandle, region RegionID) bool {
	s := ohf.Span(h)
	count := 0
	for dir := Direction(0); dir < 4; dir++ {
		if n := s.Axis[dir]; n != NoOpenSpan && ohf.Span(n).Region == region {
			count++
		}
	}
	return count >= 2
}

// floodNewRegion breadth-first floods from root, claiming every reached
// span whose distance_to_border >= fillTo for regionID. If the flood
// ever touches a span already bearing a different non-null region, the
// whole flood is aborted and reverted.
func floodNewRegion(ohf *OpenHeightfield, root OpenSpanHandle, fillTo uint16, regionID RegionID) bool {
	rootSpan := ohf.Span(root)
	rootSpan.Region = regionID
	rootSpan.DistCore = 0

	visited := []OpenSpanHandle{root}
	queue := []OpenSpanHandle{root}
	count := int32(1)

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		s := ohf.Span(h)

		for dir := Direction(0); dir < 4; dir++ {
			if n := s.Axis[dir]; n != NoOpenSpan {
				nr := ohf.Span(n).Region
				if nr != NullRegion && nr != regionID {
					revertFlood(ohf, visited)
					return false
				}
			}
			if dn := ohf.DiagonalNeighbor(s, dir); dn != NoOpenSpan {
				nr := ohf.Span(dn).Region
				if nr != NullRegion && nr != regionID {
					revertFlood(ohf, visited)
					return false
				}
			}
		}

		for dir := Direction(0); dir < 4; dir++ {
			n := s.Axis[dir]
			if n == NoOpenSpan {
				continue
			}
			ns := ohf.Span(n)
			if ns.Region == NullRegion && ns.DistBorder >= fillTo {
				ns.Region = regionID
				ns.DistCore = 0
				visited = append(visited, n)
				queue = append(queue, n)
				count++
			}
		}
	}
	return count > 0
}

func revertFlood(ohf *OpenHeightfield, visited []OpenSpanHandle) {
	for _, h := range visited {
		s := ohf.Span(h)
		s.Region = NullRegion
		s.DistCore = 0
	}
}

// buildRegionTable assembles a Region per surviving ID: span counts (one
// pass over every span), overlapping-region sets (one pass per column,
// scanning every span stacked above the same column), and each region's
// connection list (traced from its first discovered border span).
func buildRegionTable(ohf *OpenHeightfield, maxID RegionID) []*Region {
	regions := make([]*Region, maxID+1)
	for i := range regions {
		regions[i] = &Region{ID: RegionID(i), Overlaps: make(map[RegionID]bool)}
	}

	for i := range ohf.Spans {
		r := ohf.Spans[i].Region
		if r != NullRegion && int(r) <= int(maxID) {
			regions[r].SpanCount++
		}
	}

	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			seen := make(map[RegionID]bool)
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; h = ohf.Span(h).Next {
				r := ohf.Span(h).Region
				if r != NullRegion {
					seen[r] = true
				}
			}
			if len(seen) > 1 {
				for a := range seen {
					for b := range seen {
						if a != b {
							regions[a].Overlaps[b] = true
						}
					}
				}
			}
		}
	}

	found := make([]bool, maxID+1)
	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; h = ohf.Span(h).Next {
				s := ohf.Span(h)
				if s.Region == NullRegion || found[s.Region] {
					continue
				}
				for dir := Direction(0); dir < 4; dir++ {
					var nr RegionID = NullRegion
					if n := s.Axis[dir]; n != NoOpenSpan {
						nr = ohf.Span(n).Region
					}
					if nr != s.Region {
						regions[s.Region].Connections = traceRegionConnections(ohf, h, dir)
						found[s.Region] = true
						break
					}
				}
			}
		}
	}

	return regions[1:]
}

// traceRegionConnections walks a region's edge starting at (span, dir),
// appending the distinct bordering-region IDs it crosses.
func traceRegionConnections(ohf *OpenHeightfield, startSpan OpenSpanHandle, startDir Direction) []RegionID {
	var conns []RegionID
	dir := startDir
	span := startSpan
	homeRegion := ohf.Span(startSpan).Region

	for iter := 0; iter < 65536; iter++ {
		s := ohf.Span(span)
		var neighborRegion RegionID = NullRegion
		n := s.Axis[dir]
		if n != NoOpenSpan {
			neighborRegion = ohf.Span(n).Region
		}
		if neighborRegion != homeRegion {
			if len(conns) == 0 || conns[len(conns)-1] != neighborRegion {
				conns = append(conns, neighborRegion)
			}
			dir = dir.RotateCW()
		} else {
			span = n
			dir = dir.RotateCCW()
		}
		if span == startSpan && dir == startDir {
			break
		}
	}

	if len(conns) > 1 && conns[0] == conns[len(conns)-1] {
		conns = conns[:len(conns)-1]
	}
	return conns
}

func dedupeAdjacentCircular(ids []RegionID) []RegionID {
	if len(ids) < 2 {
		return ids
	}
	out := ids[:0:0]
	for _, v := range ids {
		if len(out) == 0 || out[len(out)-1] != v {
			out = append(out, v)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func countOccurrences(ids []RegionID, id RegionID) int {
	c := 0
	for _, v := range ids {
		if v == id {
			c++
		}
	}
	return c
}

// removeSmallUnconnectedRegions resets to NullRegion any region whose
// only connection is NullRegion and whose span count is below
// minUnconnectedSize.
func removeSmallUnconnectedRegions(regions []*Region, minUnconnectedSize int32) {
	if minUnconnectedSize < 1 {
		minUnconnectedSize = 1
	}
	for _, r := range regions {
		if r.SpanCount > 0 && len(r.Connections) == 1 && r.Connections[0] == NullRegion && r.SpanCount < minUnconnectedSize {
			r.removed = true
			r.SpanCount = 0
		}
	}
}

// mergeSmallRegions iterates to a fixed point merging each small region
// into its smallest eligible connected neighbor.
func mergeSmallRegions(ohf *OpenHeightfield, regions []*Region, minMergeSize int32) {
	byID := make(map[RegionID]*Region, len(regions))
	for _, r := range regions {
		byID[r.ID] = r
	}

	applyRemoval := func(id RegionID) {
		for i := range ohf.Spans {
			if ohf.Spans[i].Region == id {
				ohf.Spans[i].Region = NullRegion
			}
		}
	}
	for _, r := range regions {
		if r.removed {
			applyRemoval(r.ID)
		}
	}

	for {
		mergedAny := false
		for _, r := range regions {
			if r.removed || r.SpanCount == 0 || r.SpanCount > minMergeSize {
				continue
			}
			var best *Region
			for _, candidateID := range r.Connections {
				if candidateID == NullRegion {
					continue
				}
				n := byID[candidateID]
				if n == nil || n.removed || n.ID == r.ID {
					continue
				}
				if countOccurrences(r.Connections, n.ID) != 1 || countOccurrences(n.Connections, r.ID) != 1 {
					continue
				}
				if r.Overlaps[n.ID] || n.Overlaps[r.ID] {
					continue
				}
				if best == nil || n.SpanCount < best.SpanCount || (n.SpanCount == best.SpanCount && n.ID < best.ID) {
					best = n
				}
			}
			if best == nil {
				continue
			}

			mergeRegionInto(ohf, byID, r, best)
			mergedAny = true
		}
		if !mergedAny {
			break
		}
	}
}

// mergeRegionInto splices r's connection ring into target's at their
// shared edge, unions span counts and overlap sets, reassigns every
// span from r to target, and fixes up every other region's references
// to r.
func mergeRegionInto(ohf *OpenHeightfield, byID map[RegionID]*Region, r, target *Region) {
	i := -1
	for idx, v := range r.Connections {
		if v == target.ID {
			i = idx
			break
		}
	}
	j := -1
	for idx, v := range target.Connections {
		if v == r.ID {
			j = idx
			break
		}
	}

	var merged []RegionID
	if i >= 0 && j >= 0 {
		merged = append(merged, target.Connections[:j]...)
		merged = append(merged, r.Connections[i+1:]...)
		merged = append(merged, r.Connections[:i]...)
		merged = append(merged, target.Connections[j+1:]...)
	} else {
		merged = append(merged, target.Connections...)
		merged = append(merged, r.Connections...)
	}
	for k := range merged {
		if merged[k] == r.ID {
			merged[k] = target.ID
		}
	}
	target.Connections = dedupeAdjacentCircular(merged)

	for id := range r.Overlaps {
		if id != target.ID {
			target.Overlaps[id] = true
		}
	}
	target.SpanCount += r.SpanCount

	for i := range ohf.Spans {
		if ohf.Spans[i].Region == r.ID {
			ohf.Spans[i].Region = target.ID
		}
	}

	r.removed = true
	r.SpanCount = 0
	r.Connections = nil

	for _, other := range byID {
		if other.ID == r.ID || other.ID == target.ID {
			continue
		}
		changed := false
		for k, v := range other.Connections {
			if v == r.ID {
				other.Connections[k] = target.ID
				changed = true
			}
		}
		if changed {
			other.Connections = dedupeAdjacentCircular(other.Connections)
		}
		if other.Overlaps[r.ID] {
			delete(other.Overlaps, r.ID)
			other.Overlaps[target.ID] = true
		}
	}
}

// remapRegionIDs compacts surviving region IDs into [1, count), updating
// every span.
func remapRegionIDs(ohf *OpenHeightfield, regions []*Region) []*Region {
	remap := make(map[RegionID]RegionID)
	var out []*Region
	next := RegionID(1)
	for _, r := range regions {
		if r.removed || r.SpanCount == 0 {
			continue
		}
		remap[r.ID] = next
		r.ID = next
		out = append(out, r)
		next++
	}
	for i := range ohf.Spans {
		s := &ohf.Spans[i]
		if s.Region == NullRegion {
			continue
		}
		if newID, ok := remap[s.Region]; ok {
			s.Region = newID
		} else {
			s.Region = NullRegion
		}
	}
	return out
}

// reassignBorders smooths jagged region borders in a post-pass.
func reassignBorders(ohf *OpenHeightfield) {
	changed := true
	for changed {
		changed = false
		for y := int32(0); y < ohf.Depth; y++ {
			for x := int32(0); x < ohf.Width; x++ {
				for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; {
					s := ohf.Span(h)
					if s.Region == NullRegion {
						h = s.Next
						continue
					}
					for d := Direction(0); d < 4; d++ {
						a := s.Axis[d]
						if a == NoOpenSpan {
							continue
						}
						as := ohf.Span(a)
						if as.Region == NullRegion || as.Region == s.Region {
							continue
						}
						var matched bool
						if p := s.Axis[d.RotateCW()]; p != NoOpenSpan && ohf.Span(p).Region == as.Region {
							matched = true
						}
						if p := s.Axis[d.RotateCCW()]; p != NoOpenSpan && ohf.Span(p).Region == as.Region {
							matched = true
						}
						if matched {
							s.Region = as.Region
							changed = true
						}
					}
					h = s.Next
				}
			}
		}
	}
}
