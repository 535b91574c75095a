package navmesh

import "github.com/arl/assertgo"

// OpenSpanHandle indexes into an OpenHeightfield's span arena.
type OpenSpanHandle int32

// NoOpenSpan is the "no span" sentinel.
const NoOpenSpan OpenSpanHandle = -1

// OpenSpan is a vertical run of traversable air in one column, derived
// from the gap above a walkable solid span: its column position, floor
// (the solid span's top) and ceiling (the next span's bottom, or
// unbounded), distance to the nearest border/region core, assigned
// region, the four axis-neighbor handles, and four flags marking which
// axis neighbors belong to a different region. NoOpenSpan stands in for
// an absent neighbor; region 0 is the reserved NullRegion sentinel.
type OpenSpan struct {
	X, Y                 int32
	Min, Max             int32
	DistBorder           uint16
	DistCore             uint16
	Region               RegionID
	Axis                 [4]OpenSpanHandle
	NeighborInDiffRegion [4]bool
	Next                 OpenSpanHandle
}

// OpenHeightfield is the column-wise traversable-air derivation of a
// Heightfield, with its 4-way neighbor graph.
type OpenHeightfield struct {
	Width, Depth int32
	CellSize     float32
	CellHeight   float32
	BoundMin     [3]float32
	BoundMax     [3]float32

	Columns []OpenSpanHandle // head handle per column, ascending floor order
	Spans   []OpenSpan

	MinBorderDist uint16
	MaxBorderDist uint16

	BorderSize int32
}

func (ohf *OpenHeightfield) column(x, y int32) int32 { return x + y*ohf.Width }

func (ohf *OpenHeightfield) alloc(s OpenSpan) OpenSpanHandle {
	ohf.Spans = append(ohf.Spans, s)
	return OpenSpanHandle(len(ohf.Spans) - 1)
}

// Span returns a pointer into the arena for handle h.
func (ohf *OpenHeightfield) Span(h OpenSpanHandle) *OpenSpan { return &ohf.Spans[h] }

// voxelsCeil converts a world-unit clearance requirement into whole
// voxels, rounding up (a partial voxel of headroom is not enough
// clearance).
func voxelsCeil(worldUnits, cellHeight float32) int32 {
	v := worldUnits / cellHeight
	iv := int32(v)
	if float32(iv) < v {
		iv++
	}
	return iv
}

// voxelsFloorAtLeast1 converts a world-unit distance into whole voxels,
// rounding down but never below 1 (a zero-voxel step tolerance would
// forbid even an exactly-flat neighbor join).
func voxelsFloorAtLeast1(worldUnits, cellHeight float32) int32 {
	v := int32(worldUnits / cellHeight)
	if v < 1 {
		v = 1
	}
	return v
}

// BuildOpenHeightfield derives the traversable air columns from a solid
// Heightfield and links each span's 4 axis neighbors.
func BuildOpenHeightfield(ctx *BuildContext, minTraversableHeight, maxTraversableStep float32, hf *Heightfield) *OpenHeightfield {
	assert.True(ctx != nil, "ctx should not be nil")
	ctx.StartTimer(TimerBuildOpenHeightfield)
	defer ctx.StopTimer(TimerBuildOpenHeightfield)

	ohf := &OpenHeightfield{
		Width: hf.Width, Depth: hf.Depth,
		CellSize: hf.CellSize, CellHeight: hf.CellHeight,
		BoundMin: hf.BoundMin, BoundMax: hf.BoundMax,
		Columns: make([]OpenSpanHandle, hf.Width*hf.Depth),
	}
	for i := range ohf.Columns {
		ohf.Columns[i] = NoOpenSpan
	}

	minHeightVox := voxelsCeil(minTraversableHeight, hf.CellHeight)

	for y := int32(0); y < hf.Depth; y++ {
		for x := int32(0); x < hf.Width; x++ {
			var prevHandle OpenSpanHandle = NoOpenSpan

			for h := hf.Columns[hf.column(x, y)]; h != NoSpan; h = hf.span(h).Next {
				s := hf.span(h)
				if s.Area == NullArea {
					continue
				}
				floor := s.Max
				ceiling := int32(1 << 30)
				if s.Next != NoSpan {
					ceiling = hf.span(s.Next).Min
				}
				if ceiling-floor < minHeightVox {
					continue
				}

				os := OpenSpan{
					X: x, Y: y, Min: floor, Max: ceiling,
					Axis: [4]OpenSpanHandle{NoOpenSpan, NoOpenSpan, NoOpenSpan, NoOpenSpan},
					Next: NoOpenSpan,
				}
				oh := ohf.alloc(os)
				if prevHandle == NoOpenSpan {
					ohf.Columns[ohf.column(x, y)] = oh
				} else {
					ohf.Span(prevHandle).Next = oh
				}
				prevHandle = oh
			}
		}
	}

	linkOpenHeightfieldNeighbors(ohf, minTraversableHeight, maxTraversableStep)
	return ohf
}

// linkOpenHeightfieldNeighbors sets, for every OpenSpan S and axis
// direction d, S.Axis[d] to the unique neighbor-column OpenSpan T
// satisfying the shared-clearance and climbable-step conditions:
//
//	(min(S.max,T.max) - max(S.min,T.min)) * cell_height >= min_traversable_height
//	|T.min - S.min| * cell_height <= max_traversable_step
func linkOpenHeightfieldNeighbors(ohf *OpenHeightfield, minTraversableHeight, maxTraversableStep float32) {
	ch := ohf.CellHeight
	for y := int32(0); y < ohf.Depth; y++ {
		for x := int32(0); x < ohf.Width; x++ {
			for h := ohf.Columns[ohf.column(x, y)]; h != NoOpenSpan; {
				s := ohf.Span(h)
				for dir := Direction(0); dir < 4; dir++ {
					nx := x + dir.OffsetX()
					ny := y + dir.OffsetY()
					s.Axis[dir] = NoOpenSpan
					if nx < 0 || ny < 0 || nx >= ohf.Width || ny >= ohf.Depth {
						continue
					}
					for t := ohf.Columns[ohf.column(nx, ny)]; t != NoOpenSpan; {
						ts := ohf.Span(t)
						sharedClearance := float32(iMin(s.Max, ts.Max)-iMax(s.Min, ts.Min)) * ch
						step := float32(iAbs(ts.Min-s.Min)) * ch
						if sharedClearance >= minTraversableHeight && step <= maxTraversableStep {
							s.Axis[dir] = t
							break
						}
						t = ts.Next
					}
				}
				h = s.Next
			}
		}
	}
}

// DiagonalNeighbor derives the diagonal neighbor between axis direction
// d and d+1. Diagonal neighbors are never stored; they are derived as
// axis-neighbor d of axis-neighbor (d+1 mod 4).
func (ohf *OpenHeightfield) DiagonalNeighbor(s *OpenSpan, d Direction) OpenSpanHandle {
	first := s.Axis[d.RotateCW()] // axis-neighbor (d+1 mod 4)
	if first == NoOpenSpan {
		return NoOpenSpan
	}
	return ohf.Span(first).Axis[d] // ...its axis-neighbor d
}

// Free releases the open-heightfield arena. Safe to call once contours
// have been built.
func (ohf *OpenHeightfield) Free() {
	ohf.Spans = nil
	ohf.Columns = nil
}
