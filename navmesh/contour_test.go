package navmesh

import "testing"

func buildFlatContours(t *testing.T, w, d int32) []*Contour {
	t.Helper()
	regions, ohf := buildFlatRegions(t, w, d)
	if len(regions) == 0 {
		t.Fatalf("expected at least one region")
	}
	ctx := NewBuildContext()
	return BuildContours(ctx, ohf, 0, 0)
}

// TestBuildContoursFlatFloorSingleRegion: a flat floor with no portal
// edges (every border touches NULL_REGION) produces exactly one
// contour; with edge_max_deviation = 0 every raw vertex that isn't
// already adjacent to its simplified neighbor gets reinserted (the
// reinsertion threshold check is "distance² >= edge_max_deviation²",
// which is trivially satisfied at 0), so the simplified ring converges
// back to the full raw ring.
func TestBuildContoursFlatFloorSingleRegion(t *testing.T) {
	contours := buildFlatContours(t, 4, 4)
	if len(contours) != 1 {
		t.Fatalf("flat floor should produce exactly one contour, got %d", len(contours))
	}
	c := contours[0]
	if len(c.Verts) != len(c.Raw) {
		t.Fatalf("with edge_max_deviation=0 the simplified ring should retain every raw vertex: got %d verts, raw has %d", len(c.Verts), len(c.Raw))
	}
}

// TestRawContourIsClosedRing checks that a raw contour is a closed
// ring, traced in <= 65535 steps (walkContour's own loop bound already
// enforces this; this test checks the ring actually closes rather than
// hitting the iteration cap with a partial trace).
func TestRawContourIsClosedRing(t *testing.T) {
	contours := buildFlatContours(t, 4, 4)
	raw := contours[0].Raw
	if len(raw) == 0 {
		t.Fatalf("expected a non-empty raw contour")
	}
	if len(raw) >= 65535 {
		t.Fatalf("raw contour did not close before the iteration cap")
	}
}

// TestSimplifiedContourNoAdjacentDuplicates checks that in a simplified
// ring, no two consecutive vertices have identical coordinates.
func TestSimplifiedContourNoAdjacentDuplicates(t *testing.T) {
	contours := buildFlatContours(t, 6, 6)
	for _, c := range contours {
		n := len(c.Verts)
		for i := 0; i < n; i++ {
			a := c.Verts[i]
			b := c.Verts[(i+1)%n]
			if a.X == b.X && a.Y == b.Y && a.Z == b.Z {
				t.Fatalf("contour for region %d has adjacent duplicate vertices at index %d", c.Region, i)
			}
		}
	}
}

func TestIslandEndpointsPicksLexicographicExtremes(t *testing.T) {
	raw := []ContourVertex{
		{X: 2, Y: 0}, {X: 0, Y: 5}, {X: 1, Y: 1}, {X: 3, Y: -1},
	}
	got := islandEndpoints(raw)
	if len(got) != 2 {
		t.Fatalf("islandEndpoints returned %d verts, want 2", len(got))
	}
	if got[0].X != 0 || got[0].Y != 5 {
		t.Fatalf("islandEndpoints min = %+v, want X=0,Y=5", got[0])
	}
	if got[1].X != 3 || got[1].Y != -1 {
		t.Fatalf("islandEndpoints max = %+v, want X=3,Y=-1", got[1])
	}
}
