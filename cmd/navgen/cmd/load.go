package cmd

import (
	"github.com/arl/gobj"
	"github.com/arl/gogeo/f32/d3"
)

// loadGeometry reads an OBJ file and flattens it into the (vertices,
// triangle-indices) pair navmesh.BuildNavMesh consumes. Each OBJ
// vertex's (x, y, z) passes straight through with no coordinate-system
// conversion, so the input file is expected to already use navgen's
// X(width)/Y(depth)/Z(up) convention. Faces with more than 3 vertices
// are fan-triangulated around their first vertex, since
// navmesh.BuildNavMesh only accepts triangles.
func loadGeometry(path string) (verts []float32, tris []int32, bmin, bmax d3.Vec3, err error) {
	of, err := gobj.Load(path)
	if err != nil {
		return nil, nil, d3.Vec3{}, d3.Vec3{}, err
	}

	index := make(map[[3]float32]int32)
	var flat []float32

	vertIndex := func(v gobj.Vertex) int32 {
		key := [3]float32{float32(v.X()), float32(v.Y()), float32(v.Z())}
		if idx, ok := index[key]; ok {
			return idx
		}
		idx := int32(len(flat) / 3)
		flat = append(flat, key[0], key[1], key[2])
		index[key] = idx
		return idx
	}

	for _, poly := range of.Polys() {
		if len(poly) < 3 {
			continue
		}
		a := vertIndex(poly[0])
		for i := 1; i < len(poly)-1; i++ {
			b := vertIndex(poly[i])
			c := vertIndex(poly[i+1])
			tris = append(tris, a, b, c)
		}
	}

	bb := of.AABB()
	bmin = d3.Vec3{float32(bb.MinX), float32(bb.MinY), float32(bb.MinZ)}
	bmax = d3.Vec3{float32(bb.MaxX), float32(bb.MaxY), float32(bb.MaxZ)}
	return flat, tris, bmin, bmax, nil
}
