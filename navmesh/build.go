package navmesh

import "github.com/arl/gogeo/f32/d3"

// BuildResult is everything BuildNavMesh produces: the intermediate
// heightfields (useful for debugging/visualization tooling) plus the
// final PolyMesh. Every pipeline stage's output gets its own field so
// callers can inspect or render intermediate state without rerunning
// earlier stages.
type BuildResult struct {
	Heightfield     *Heightfield
	OpenHeightfield *OpenHeightfield
	Regions         []*Region
	Contours        []*Contour
	PolyMesh        *PolyMesh
}

// BuildNavMesh runs the full pipeline over a triangle soup, producing a
// BuildResult or a BuildError: rasterize, filter, erode, build the open
// heightfield, build the distance field, segment into regions, trace
// and simplify contours, then triangulate and merge into a polygon
// mesh.
func BuildNavMesh(verts []float32, tris []int32, boundMin, boundMax d3.Vec3, params BuildParams, volumes ...ConvexVolume) (*BuildResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ntris := len(tris) / 3
	if len(verts) == 0 || len(tris) == 0 {
		return nil, &BuildError{Kind: EmptyInput, Message: "triangle mesh has no geometry"}
	}
	if len(verts)%3 != 0 || len(verts) < 9 {
		return nil, &BuildError{Kind: InvalidGeometry, Message: "vertex array must hold at least 3 whole (x,y,z) vertices"}
	}
	if len(tris)%3 != 0 {
		return nil, &BuildError{Kind: InvalidGeometry, Message: "triangle index count must be a multiple of 3"}
	}
	if boundMax[0] <= boundMin[0] || boundMax[1] <= boundMin[1] || boundMax[2] <= boundMin[2] {
		return nil, &BuildError{Kind: EmptyInput, Message: "bounding box has zero or negative volume"}
	}

	ctx := NewBuildContext()
	ctx.StartTimer(TimerTotal)
	defer ctx.StopTimer(TimerTotal)

	areas := make([]Area, ntris)
	MarkWalkableTriangles(params.MaxTraversableAngle, verts, tris, areas)

	width, depth := CalcGridSize(boundMin, boundMax, params.CellSize)
	bmin := [3]float32{boundMin[0], boundMin[1], boundMin[2]}
	bmax := [3]float32{boundMax[0], boundMax[1], boundMax[2]}
	hf := NewHeightfield(width, depth, bmin, bmax, params.CellSize, params.CellHeight)

	var tm *ChunkyTriMesh
	if ntris >= chunkyThreshold {
		tm = NewChunkyTriMesh(verts, tris)
	}
	RasterizeTriangles(ctx, verts, tris, areas, hf, tm)

	// Convex-volume area overrides apply right after rasterization and
	// before the post-filters, so a volume marking an area unwalkable
	// still gets the chance to be re-opened by FilterLowHangingWalkableObstacles
	// and a volume marking an area walkable is still subject to the
	// ledge/height filters and border erosion below.
	for _, vol := range volumes {
		MarkConvexPolyArea(hf, vol)
	}

	walkableClimbVox := voxelsFloorAtLeast1(params.MaxTraversableStep, params.CellHeight)
	walkableHeightVox := voxelsCeil(params.MinTraversableHeight, params.CellHeight)

	FilterLowHangingWalkableObstacles(ctx, walkableClimbVox, hf)
	filterLowHeightSpans(hf, walkableHeightVox)
	FilterLedgeSpans(ctx, walkableHeightVox, walkableClimbVox, hf)

	if params.TraversableAreaBorderSize > 0 {
		ErodeWalkableArea(ctx, params.TraversableAreaBorderSize, hf)
	}

	ohf := BuildOpenHeightfield(ctx, params.MinTraversableHeight, params.MaxTraversableStep, hf)
	ohf.BorderSize = params.TraversableAreaBorderSize

	result := &BuildResult{Heightfield: hf, OpenHeightfield: ohf}
	if !params.PerformFullGeneration {
		return result, nil
	}

	BuildDistanceField(ctx, ohf)
	if params.SmoothingThreshold > 0 {
		boxBlurDistanceField(ohf, params.SmoothingThreshold)
	}

	regions := BuildRegions(ctx, ohf,
		params.TraversableAreaBorderSize,
		params.MinUnconnectedRegionSize,
		params.MinMergeRegionSize,
		params.UseConservativeExpansion)
	result.Regions = regions

	contours := BuildContours(ctx, ohf, params.EdgeMaxDeviation, params.MaxEdgeLength)
	result.Contours = contours

	polyMesh := BuildPolyMesh(ctx, contours, params.MaxVerticesPerPolygon)
	result.PolyMesh = polyMesh

	return result, nil
}
