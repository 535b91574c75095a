package navmesh

import "testing"

func newTestHeightfield(w, d int32) *Heightfield {
	bmin := [3]float32{0, 0, 0}
	bmax := [3]float32{float32(w) * 30, float32(d) * 30, 1000}
	return NewHeightfield(w, d, bmin, bmax, 30, 30)
}

func TestAddSpanMergesOverlapping(t *testing.T) {
	hf := newTestHeightfield(1, 1)
	hf.AddSpan(0, 0, 0, 10, WalkableArea)
	hf.AddSpan(0, 0, 5, 15, WalkableArea)

	h := hf.Columns[hf.column(0, 0)]
	if h == NoSpan {
		t.Fatalf("expected a span after merge")
	}
	s := hf.span(h)
	if s.Min != 0 || s.Max != 15 {
		t.Fatalf("merged span = [%d,%d), want [0,15)", s.Min, s.Max)
	}
	if s.Next != NoSpan {
		t.Fatalf("expected a single merged span, found a second")
	}
}

func TestAddSpanKeepsDisjointSeparate(t *testing.T) {
	hf := newTestHeightfield(1, 1)
	hf.AddSpan(0, 0, 0, 5, WalkableArea)
	hf.AddSpan(0, 0, 20, 25, WalkableArea)

	h := hf.Columns[hf.column(0, 0)]
	s := hf.span(h)
	if s.Min != 0 || s.Max != 5 {
		t.Fatalf("first span = [%d,%d), want [0,5)", s.Min, s.Max)
	}
	if s.Next == NoSpan {
		t.Fatalf("expected a second disjoint span")
	}
	s2 := hf.span(s.Next)
	if s2.Min != 20 || s2.Max != 25 {
		t.Fatalf("second span = [%d,%d), want [20,25)", s2.Min, s2.Max)
	}
}

func TestAddSpanTouchingMerges(t *testing.T) {
	hf := newTestHeightfield(1, 1)
	hf.AddSpan(0, 0, 0, 5, WalkableArea)
	// Touching (min == prev max+1) should merge, not stay disjoint.
	hf.AddSpan(0, 0, 6, 10, WalkableArea)

	h := hf.Columns[hf.column(0, 0)]
	s := hf.span(h)
	if s.Min != 0 || s.Max != 10 {
		t.Fatalf("touching spans = [%d,%d), want merged [0,10)", s.Min, s.Max)
	}
	if s.Next != NoSpan {
		t.Fatalf("expected a single merged span")
	}
}

func TestAddSpanAreaFromTopSurface(t *testing.T) {
	hf := newTestHeightfield(1, 1)
	hf.AddSpan(0, 0, 0, 10, NullArea)
	hf.AddSpan(0, 0, 5, 20, WalkableArea)

	h := hf.Columns[hf.column(0, 0)]
	s := hf.span(h)
	if s.Max != 20 {
		t.Fatalf("merged max = %d, want 20", s.Max)
	}
	if s.Area != WalkableArea {
		t.Fatalf("merged area = %v, want WalkableArea (new top surface wins)", s.Area)
	}
}
