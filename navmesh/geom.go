package navmesh

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// This file groups the geometry/math helpers shared by the other
// pipeline stages: bounds/grid-size computation, triangle normals,
// signed-area predicates, and polygon clipping.

// Triangle is one input face: three world-space vertex positions.
type Triangle struct {
	V0, V1, V2 d3.Vec3
}

// CalcBounds computes the axis-aligned bounding box of a flat vertex
// array (3 floats per vertex).
func CalcBounds(verts []float32) (bmin, bmax d3.Vec3) {
	if len(verts) < 3 {
		return
	}
	bmin = d3.Vec3{verts[0], verts[1], verts[2]}
	bmax = d3.Vec3{verts[0], verts[1], verts[2]}
	for i := 3; i+2 < len(verts); i += 3 {
		v := d3.Vec3{verts[i], verts[i+1], verts[i+2]}
		d3.Vec3Min(bmin, v)
		d3.Vec3Max(bmax, v)
	}
	return
}

// CalcGridSize computes the voxel-grid width/depth for a bounding box
// and cell size: width = round((bmax.x-bmin.x)/cs).
func CalcGridSize(bmin, bmax d3.Vec3, cs float32) (width, depth int32) {
	width = int32((bmax[0]-bmin[0])/cs + 0.5)
	depth = int32((bmax[1]-bmin[1])/cs + 0.5)
	return
}

// triNormal computes the unit face normal of (v0,v1,v2) as
// (v2-v0) x (v1-v0), normalized. A triangle wound clockwise in XY (seen
// from +Z) gets a +Z (up) normal; a counter-clockwise one points down.
func triNormal(v0, v1, v2 d3.Vec3) d3.Vec3 {
	e0 := v1.Sub(v0)
	e1 := v2.Sub(v0)
	n := d3.Vec3{0, 0, 0}
	d3.Vec3Cross(n, e1, e0)
	l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l > 1e-12 {
		n[0] /= l
		n[1] /= l
		n[2] /= l
	}
	return n
}

// TriArea2D returns twice the signed area of triangle (a,b,c) projected
// on the XY plane. Positive means counter-clockwise winding.
func TriArea2D(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
}

// left reports whether c lies strictly to the left of the directed line
// a->b (i.e. triangle a,b,c is wound counter-clockwise).
func left(ax, ay, bx, by, cx, cy float32) bool {
	return TriArea2D(ax, ay, bx, by, cx, cy) > 0
}

// leftOn reports whether c lies to the left of or on the line a->b.
func leftOn(ax, ay, bx, by, cx, cy float32) bool {
	return TriArea2D(ax, ay, bx, by, cx, cy) >= 0
}

// collinear reports whether a, b, c are collinear in XY.
func collinear(ax, ay, bx, by, cx, cy float32) bool {
	return TriArea2D(ax, ay, bx, by, cx, cy) == 0
}

// clipPolyPlane clips a convex polygon (flattened x,y,z triples) against
// the half-space axis*coord <= value (or >= if inverted), Sutherland-
// Hodgman style. Used by rasterize.go to clip triangles against a
// heightfield column's four side planes (two calls per X and Y axis).
func clipPolyPlane(in []float32, axis int, value float32, keepLess bool) []float32 {
	n := len(in) / 3
	if n == 0 {
		return nil
	}
	d := make([]float32, n)
	for i := 0; i < n; i++ {
		c := in[i*3+axis]
		if keepLess {
			d[i] = value - c
		} else {
			d[i] = c - value
		}
	}
	out := make([]float32, 0, len(in)+3)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		ina := d[j] >= 0
		inb := d[i] >= 0
		if ina != inb {
			s := d[j] / (d[j] - d[i])
			for k := 0; k < 3; k++ {
				vj := in[j*3+k]
				vi := in[i*3+k]
				out = append(out, vj+(vi-vj)*s)
			}
		}
		if inb {
			out = append(out, in[i*3], in[i*3+1], in[i*3+2])
		}
	}
	return out
}

// degToRad converts degrees to radians.
func degToRad(deg float32) float32 { return deg / 180.0 * math32.Pi }

// vec3At reads vertex index i (3 floats per vertex) out of a flat array.
func vec3At(verts []float32, i int32) d3.Vec3 {
	return d3.Vec3{verts[i*3], verts[i*3+1], verts[i*3+2]}
}
