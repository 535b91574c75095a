package navmesh

import "testing"

// buildFlatOpenHeightfield voxelizes a flat w x d floor (one span per
// column, floor at height 1, open above) directly through
// BuildOpenHeightfield, without going through rasterization.
func buildFlatOpenHeightfield(t *testing.T, w, d int32) *OpenHeightfield {
	t.Helper()
	bmin := [3]float32{0, 0, 0}
	bmax := [3]float32{float32(w), float32(d), 10}
	hf := NewHeightfield(w, d, bmin, bmax, 1, 1)
	for y := int32(0); y < d; y++ {
		for x := int32(0); x < w; x++ {
			hf.AddSpan(x, y, 0, 1, WalkableArea)
		}
	}
	ctx := NewBuildContext()
	return BuildOpenHeightfield(ctx, 3, 1, hf)
}

func TestBuildOpenHeightfieldOneSpanPerColumn(t *testing.T) {
	ohf := buildFlatOpenHeightfield(t, 4, 4)
	if len(ohf.Spans) != 16 {
		t.Fatalf("got %d open spans, want 16 (one per column of a flat 4x4 floor)", len(ohf.Spans))
	}
}

// TestAxisNeighborSymmetry checks that for every OpenSpan S with
// axis-neighbor T in direction d, T's axis-neighbor in direction
// (d+2)%4 is S.
func TestAxisNeighborSymmetry(t *testing.T) {
	ohf := buildFlatOpenHeightfield(t, 4, 4)
	for h := range ohf.Spans {
		s := &ohf.Spans[h]
		for d := Direction(0); d < 4; d++ {
			n := s.Axis[d]
			if n == NoOpenSpan {
				continue
			}
			back := ohf.Span(n).Axis[d.Opposite()]
			if back != OpenSpanHandle(h) {
				t.Fatalf("span %d's axis[%d]=%d does not reciprocate: neighbor's axis[%d]=%d, want %d",
					h, d, n, d.Opposite(), back, h)
			}
		}
	}
}

// TestDiagonalNeighborFormula checks DiagonalNeighbor(s,d) equals
// Span(Axis[RotateCW(d)]).Axis[d].
func TestDiagonalNeighborFormula(t *testing.T) {
	ohf := buildFlatOpenHeightfield(t, 4, 4)
	// The span at column (1,1) has all 4 axis and diagonal neighbors.
	h := ohf.Columns[ohf.column(1, 1)]
	s := ohf.Span(h)
	for d := Direction(0); d < 4; d++ {
		got := ohf.DiagonalNeighbor(s, d)
		var want OpenSpanHandle = NoOpenSpan
		if ax := s.Axis[d.RotateCW()]; ax != NoOpenSpan {
			want = ohf.Span(ax).Axis[d]
		}
		if got != want {
			t.Fatalf("DiagonalNeighbor(s,%d) = %d, want %d", d, got, want)
		}
	}
}
