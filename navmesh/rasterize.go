package navmesh

import "github.com/arl/math32"

// RasterizeTriangles voxelizes triangles into hf, clipping each against
// its overlapping columns' four side planes (X and Y) with clipPolyPlane;
// the clipped polygon's vertical range is then clamped to the field
// height rather than clipped against top and bottom planes.
func RasterizeTriangles(ctx *BuildContext, verts []float32, tris []int32, areas []Area, hf *Heightfield, tm *ChunkyTriMesh) {
	ctx.StartTimer(TimerRasterizeTriangles)
	defer ctx.StopTimer(TimerRasterizeTriangles)

	ntris := len(tris) / 3
	if tm == nil || ntris < chunkyThreshold {
		for i := 0; i < ntris; i++ {
			rasterizeTriangle(hf, verts, tris[i*3], tris[i*3+1], tris[i*3+2], areas[i])
		}
		return
	}

	// Large meshes: query the chunky triangle mesh once with the
	// heightfield's XY bounds and rasterize the triangles of every leaf
	// chunk that overlaps them; chunks wholly outside the field are
	// skipped. No per-column query is made: each triangle is still
	// rasterized over the columns its own bounding box covers.
	bmin := [2]float32{hf.BoundMin[0], hf.BoundMin[1]}
	bmax := [2]float32{hf.BoundMax[0], hf.BoundMax[1]}
	ids := tm.ChunksOverlappingRect(bmin, bmax)
	seen := make(map[int32]bool, len(ids))
	for _, id := range ids {
		node := tm.Nodes[id]
		for k := node.I; k < node.I+node.N; k++ {
			triIdx := tm.TriIdx[k]
			if seen[triIdx] {
				continue
			}
			seen[triIdx] = true
			rasterizeTriangle(hf, verts, tris[triIdx*3], tris[triIdx*3+1], tris[triIdx*3+2], areas[triIdx])
		}
	}
}

func rasterizeTriangle(hf *Heightfield, verts []float32, ia, ib, ic int32, area Area) {
	v0 := verts[ia*3 : ia*3+3]
	v1 := verts[ib*3 : ib*3+3]
	v2 := verts[ic*3 : ic*3+3]

	cs := hf.CellSize
	ics := 1.0 / cs
	ich := 1.0 / hf.CellHeight

	tmin := [3]float32{v0[0], v0[1], v0[2]}
	tmax := [3]float32{v0[0], v0[1], v0[2]}
	for _, v := range [][]float32{v1, v2} {
		for k := 0; k < 3; k++ {
			tmin[k] = math32.Min(tmin[k], v[k])
			tmax[k] = math32.Max(tmax[k], v[k])
		}
	}

	bmin, bmax := hf.BoundMin, hf.BoundMax
	if tmax[0] < bmin[0] || tmin[0] > bmax[0] || tmax[1] < bmin[1] || tmin[1] > bmax[1] {
		return
	}

	w0 := int32((tmin[0] - bmin[0]) * ics)
	w1 := int32((tmax[0] - bmin[0]) * ics)
	d0 := int32((tmin[1] - bmin[1]) * ics)
	d1 := int32((tmax[1] - bmin[1]) * ics)
	w0 = iMax(0, w0)
	w1 = iMin(hf.Width-1, w1)
	d0 = iMax(0, d0)
	d1 = iMin(hf.Depth-1, d1)
	if w1 < w0 || d1 < d0 {
		return
	}

	fieldHeight := float32(bmax[2] - bmin[2])

	triPoly := []float32{v0[0], v0[1], v0[2], v1[0], v1[1], v1[2], v2[0], v2[1], v2[2]}

	for y := d0; y <= d1; y++ {
		cellY0 := bmin[1] + float32(y)*cs
		cellY1 := cellY0 + cs
		poly := clipPolyPlane(triPoly, 1, cellY0, false)
		if len(poly) < 9 {
			continue
		}
		poly = clipPolyPlane(poly, 1, cellY1, true)
		if len(poly) < 9 {
			continue
		}
		for x := w0; x <= w1; x++ {
			cellX0 := bmin[0] + float32(x)*cs
			cellX1 := cellX0 + cs
			p := clipPolyPlane(poly, 0, cellX0, false)
			if len(p) < 9 {
				continue
			}
			p = clipPolyPlane(p, 0, cellX1, true)
			if len(p) < 9 {
				continue
			}

			zmin, zmax := p[2], p[2]
			for k := 1; k < len(p)/3; k++ {
				z := p[k*3+2]
				zmin = math32.Min(zmin, z)
				zmax = math32.Max(zmax, z)
			}
			zmin -= bmin[2]
			zmax -= bmin[2]
			if zmax < 0 || zmin > fieldHeight {
				continue
			}
			if zmin < 0 {
				zmin = 0
			}
			if zmax > fieldHeight {
				zmax = fieldHeight
			}

			spanMin := int32(math32.Floor(zmin * ich))
			spanMax := int32(math32.Ceil(zmax * ich))
			if spanMax <= spanMin {
				spanMax = spanMin + 1
			}
			hf.AddSpan(x, y, spanMin, spanMax, area)
		}
	}
}

// MarkWalkableTriangles classifies each triangle as Walkable or Null by
// its up-facing normal: a face whose normal's Z component exceeds
// cos(maxTraversableAngleDeg) is walkable.
func MarkWalkableTriangles(maxTraversableAngleDeg float32, verts []float32, tris []int32, areas []Area) {
	thr := math32.Cos(degToRad(maxTraversableAngleDeg))
	ntris := len(tris) / 3
	for i := 0; i < ntris; i++ {
		ia, ib, ic := tris[i*3], tris[i*3+1], tris[i*3+2]
		v0 := vec3At(verts, ia)
		v1 := vec3At(verts, ib)
		v2 := vec3At(verts, ic)
		n := triNormal(v0, v1, v2)
		if n[2] > thr {
			areas[i] = WalkableArea
		} else {
			areas[i] = NullArea
		}
	}
}
