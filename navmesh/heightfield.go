package navmesh

import "github.com/arl/assertgo"

// SpanHandle indexes into a Heightfield's span arena: spans live in one
// contiguous slice and are linked by index rather than pointer, so the
// whole arena can be allocated, walked, and freed as a unit. NoSpan is
// the "no next span" sentinel.
type SpanHandle int32

// NoSpan is the zero-value-safe "no span" handle.
const NoSpan SpanHandle = -1

// HeightSpan is a vertical run of solid voxels in one column: a min/max
// voxel height range (max > min), an area attribute, and a singly
// linked next span. Within a column, spans are strictly increasing in
// min and never overlap.
type HeightSpan struct {
	Min, Max int32
	Area     Area
	Next     SpanHandle
}

// Heightfield is the voxel-column grid produced by rasterization.
type Heightfield struct {
	Width, Depth int32
	CellSize     float32
	CellHeight   float32
	BoundMin     [3]float32
	BoundMax     [3]float32
	Columns      []SpanHandle // head handle per column, len Width*Depth
	Spans        []HeightSpan // arena
}

// NewHeightfield allocates an empty heightfield for the given grid
// dimensions and cell sizes.
func NewHeightfield(width, depth int32, bmin, bmax [3]float32, cs, ch float32) *Heightfield {
	hf := &Heightfield{
		Width: width, Depth: depth,
		CellSize: cs, CellHeight: ch,
		BoundMin: bmin, BoundMax: bmax,
		Columns: make([]SpanHandle, width*depth),
	}
	for i := range hf.Columns {
		hf.Columns[i] = NoSpan
	}
	return hf
}

func (hf *Heightfield) column(x, y int32) int32 { return x + y*hf.Width }

func (hf *Heightfield) alloc(s HeightSpan) SpanHandle {
	hf.Spans = append(hf.Spans, s)
	return SpanHandle(len(hf.Spans) - 1)
}

// span returns a pointer into the arena for handle h. Callers must not
// retain it across further allocations (append may reallocate).
func (hf *Heightfield) span(h SpanHandle) *HeightSpan { return &hf.Spans[h] }

// AddSpan inserts [min,max) with the given area into column (x,y),
// merging or splitting against the existing chain:
//
//	N entirely below C (N.max+1 < C.min)      -> insert N before C
//	N entirely above C, C has no next          -> append N after C
//	N overlaps or touches C                    -> merge
func (hf *Heightfield) AddSpan(x, y, min, max int32, area Area) {
	assert.True(max > min, "AddSpan: max must be greater than min")
	col := hf.column(x, y)

	newSpan := HeightSpan{Min: min, Max: max, Area: area, Next: NoSpan}

	cur := hf.Columns[col]
	if cur == NoSpan {
		hf.Columns[col] = hf.alloc(newSpan)
		return
	}

	var prev SpanHandle = NoSpan
	for cur != NoSpan {
		c := hf.span(cur)
		if newSpan.Max+1 < c.Min {
			// N entirely below C: insert before C.
			newSpan.Next = cur
			h := hf.alloc(newSpan)
			if prev == NoSpan {
				hf.Columns[col] = h
			} else {
				hf.span(prev).Next = h
			}
			return
		}
		if newSpan.Min > c.Max+1 {
			// N entirely above C; keep scanning unless C is the tail.
			if c.Next == NoSpan {
				h := hf.alloc(newSpan)
				hf.span(cur).Next = h
				return
			}
			prev = cur
			cur = c.Next
			continue
		}

		// Overlap or touch: merge N into C, then walk upward absorbing
		// any further spans N's extended max now touches.
		mergedMin := iMin(c.Min, newSpan.Min)
		mergedMax := iMax(c.Max, newSpan.Max)

		next := c.Next
		for next != NoSpan {
			n := hf.span(next)
			if n.Min > mergedMax+1 {
				break
			}
			mergedMax = iMax(mergedMax, n.Max)
			next = n.Next
		}

		// The merged span's area becomes N's iff the new surface's top
		// voxel is the final merged top; otherwise C's area survives.
		mergedArea := c.Area
		if newSpan.Max == mergedMax {
			mergedArea = newSpan.Area
		}

		c = hf.span(cur)
		c.Min, c.Max, c.Area = mergedMin, mergedMax, mergedArea
		c.Next = next
		return
	}
}

// Free releases the span arena. Safe to call once the open heightfield
// has been built, since nothing downstream needs the solid heightfield
// after that point.
func (hf *Heightfield) Free() {
	hf.Spans = nil
	hf.Columns = nil
}
