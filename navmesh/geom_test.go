package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
)

func TestCalcBounds(t *testing.T) {
	verts := []float32{
		0, 0, 0,
		10, 5, -3,
		-2, 8, 4,
	}
	bmin, bmax := CalcBounds(verts)
	want := d3.Vec3{-2, 0, -3}
	if bmin[0] != want[0] || bmin[1] != want[1] || bmin[2] != want[2] {
		t.Fatalf("bmin = %v, want %v", bmin, want)
	}
	want = d3.Vec3{10, 8, 4}
	if bmax[0] != want[0] || bmax[1] != want[1] || bmax[2] != want[2] {
		t.Fatalf("bmax = %v, want %v", bmax, want)
	}
}

func TestCalcGridSize(t *testing.T) {
	bmin := d3.Vec3{0, 0, 0}
	bmax := d3.Vec3{120, 90, 10}
	w, d := CalcGridSize(bmin, bmax, 30)
	if w != 4 || d != 3 {
		t.Fatalf("CalcGridSize = (%d,%d), want (4,3)", w, d)
	}
}

func TestTriArea2DSign(t *testing.T) {
	// a=(0,0) b=(1,0) c=(0,1): c is to the left of a->b, CCW triangle.
	area := TriArea2D(0, 0, 1, 0, 0, 1)
	if area <= 0 {
		t.Fatalf("TriArea2D(ccw) = %v, want > 0", area)
	}
	// Reversed winding is negative.
	area = TriArea2D(0, 0, 0, 1, 1, 0)
	if area >= 0 {
		t.Fatalf("TriArea2D(cw) = %v, want < 0", area)
	}
}

func TestLeftAndLeftOn(t *testing.T) {
	if !left(0, 0, 1, 0, 0, 1) {
		t.Fatalf("left: (0,1) should be left of (0,0)->(1,0)")
	}
	if left(0, 0, 1, 0, 1, -1) {
		t.Fatalf("left: (1,-1) should not be left of (0,0)->(1,0)")
	}
	if !leftOn(0, 0, 1, 0, 2, 0) {
		t.Fatalf("leftOn: collinear point should report true")
	}
}

func TestClipPolyPlaneKeepsInsideHalf(t *testing.T) {
	// Unit square in XY at z=0, clipped to x <= 0.5.
	square := []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	out := clipPolyPlane(square, 0, 0.5, true)
	n := len(out) / 3
	if n < 3 {
		t.Fatalf("clipped polygon has %d verts, want >= 3", n)
	}
	for i := 0; i < n; i++ {
		x := out[i*3]
		if x > 0.5+1e-4 {
			t.Fatalf("clipped vertex x=%v exceeds clip plane 0.5", x)
		}
	}
}
