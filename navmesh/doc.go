// Package navmesh converts a static triangle mesh and a set of
// agent-traversability parameters into a polygonal navigation mesh.
//
// The pipeline is a strict chain of stages, each consuming the previous
// stage's output:
//
//	triangles -> Heightfield -> OpenHeightfield -> (distance field) ->
//	  region segmentation -> []*Contour -> PolyMesh
//
// BuildNavMesh orchestrates the whole chain. It does not release the
// intermediate stages: every one is kept in the returned BuildResult,
// and the Free methods on Heightfield and OpenHeightfield are left to
// the caller. The individual stages are exported
// so callers needing partial builds (e.g. stopping after the open
// heightfield) can drive them directly.
package navmesh
