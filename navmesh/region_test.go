package navmesh

import "testing"

func buildFlatRegions(t *testing.T, w, d int32) ([]*Region, *OpenHeightfield) {
	t.Helper()
	ohf := buildFlatOpenHeightfield(t, w, d)
	ctx := NewBuildContext()
	BuildDistanceField(ctx, ohf)
	regions := BuildRegions(ctx, ohf, 0, 0, 0, true)
	return regions, ohf
}

func TestBuildRegionsFlatFloorIsOneRegion(t *testing.T) {
	regions, _ := buildFlatRegions(t, 8, 8)
	if len(regions) != 1 {
		t.Fatalf("flat floor should watershed into exactly one region, got %d", len(regions))
	}
}

// TestRegionIDsContiguous checks that after remap, region IDs are
// contiguous in [0, region_count), with 0 reserved for NULL_REGION.
func TestRegionIDsContiguous(t *testing.T) {
	regions, _ := buildFlatRegions(t, 8, 8)
	seen := make(map[RegionID]bool)
	for _, r := range regions {
		if r.ID == NullRegion {
			t.Fatalf("a surviving region must not carry NullRegion's ID")
		}
		seen[r.ID] = true
	}
	for i := 1; i <= len(regions); i++ {
		if !seen[RegionID(i)] {
			t.Fatalf("region IDs are not contiguous: missing ID %d among %d regions", i, len(regions))
		}
	}
}

func TestBuildRegionsEverySpanAssignedOnFlatFloor(t *testing.T) {
	_, ohf := buildFlatRegions(t, 6, 6)
	for i, s := range ohf.Spans {
		if s.Region == NullRegion {
			t.Fatalf("span %d left unassigned after BuildRegions on a fully-walkable flat floor", i)
		}
	}
}

func TestDedupeAdjacentCircular(t *testing.T) {
	in := []RegionID{1, 1, 2, 2, 3, 1}
	got := dedupeAdjacentCircular(in)
	// Adjacent dups collapse to [1,2,3,1], then the wraparound check
	// sees first==last (1==1) and drops the trailing 1.
	want := []RegionID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("dedupeAdjacentCircular(%v) = %v, want %v", in, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dedupeAdjacentCircular(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestDedupeAdjacentCircularWraparound(t *testing.T) {
	in := []RegionID{1, 2, 2, 1}
	got := dedupeAdjacentCircular(in)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("dedupeAdjacentCircular(%v) = %v, want [1 2] (wraparound dup collapsed)", in, got)
	}
}
