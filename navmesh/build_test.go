package navmesh

import (
	"testing"

	"github.com/arl/gogeo/f32/d3"
	"github.com/stretchr/testify/require"
)

// testParams returns BuildParams tuned to a 1-world-unit voxel grid, so
// fixtures built from small integer coordinates (step height 1, 4x4
// quads, ...) map directly onto world coordinates. Besides
// cell_size/cell_height, min_traversable_height and max_traversable_step
// are rescaled to that grid, border erosion, small-region removal and
// merging and edge subdivision are turned off, edge_max_deviation is 1
// and max_vertices_per_polygon is 6.
func testParams() BuildParams {
	p := DefaultParams()
	p.CellSize = 1
	p.CellHeight = 1
	p.MinTraversableHeight = 3
	p.MaxTraversableStep = 1
	p.TraversableAreaBorderSize = 0
	p.MinUnconnectedRegionSize = 0
	p.MinMergeRegionSize = 0
	p.EdgeMaxDeviation = 1
	p.MaxEdgeLength = 0
	p.MaxVerticesPerPolygon = 6
	return p
}

// quad appends two triangles covering [x0,x1]x[y0,y1] at height z to
// verts/tris, returning the updated slices. Both triangles are wound
// clockwise in XY, the winding triNormal treats as facing up.
func quad(verts []float32, tris []int32, x0, y0, x1, y1, z float32) ([]float32, []int32) {
	base := int32(len(verts) / 3)
	verts = append(verts,
		x0, y0, z,
		x1, y0, z,
		x1, y1, z,
		x0, y1, z,
	)
	tris = append(tris,
		base+0, base+2, base+1,
		base+0, base+3, base+2,
	)
	return verts, tris
}

// TestScenarioS1FlatQuad: a flat 4x4 quad should produce a single
// region and at least one polygon; the polygon count and vertex counts
// are not checked.
func TestScenarioS1FlatQuad(t *testing.T) {
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 4, 4, 0)

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 5}

	result, err := BuildNavMesh(verts, tris, bmin, bmax, testParams())
	require.NoError(t, err)
	require.NotNil(t, result.PolyMesh)
	require.Len(t, result.Regions, 1, "flat quad should segment into exactly one region")
	require.NotEmpty(t, result.PolyMesh.Polys, "expected at least one polygon covering the floor")
}

// TestScenarioS2TwoCoplanarQuads: two quads joined along y=2 forming a
// 4x4 square should merge into one region spanning both.
func TestScenarioS2TwoCoplanarQuads(t *testing.T) {
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 4, 2, 0)
	verts, tris = quad(verts, tris, 0, 2, 4, 4, 0)

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 5}

	result, err := BuildNavMesh(verts, tris, bmin, bmax, testParams())
	require.NoError(t, err)
	require.Len(t, result.Regions, 1, "two coplanar quads joined at an edge should form one region")
}

// TestScenarioS3FloorWithPillar: a 4x4 floor with a 1x1 raised pillar
// punching a hole in it should still triangulate, producing at least
// one polygon, each within max_vertices_per_polygon.
func TestScenarioS3FloorWithPillar(t *testing.T) {
	var verts []float32
	var tris []int32
	verts, tris = quad(verts, tris, 0, 0, 4, 4, 0)
	// Pillar top at z=2: its voxels touch the floor's in the same
	// columns, so AddSpan merges them into one solid run with no
	// floor-level air, and the 2-unit rise exceeds max_traversable_step,
	// so the pillar is not stepped onto either.
	verts, tris = quad(verts, tris, 1, 1, 2, 2, 2)

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 8}

	result, err := BuildNavMesh(verts, tris, bmin, bmax, testParams())
	require.NoError(t, err)
	require.NotNil(t, result.PolyMesh)
	require.NotEmpty(t, result.PolyMesh.Polys, "floor-with-pillar should still produce a walkable ring of polygons")
	for _, p := range result.PolyMesh.Polys {
		require.LessOrEqual(t, len(p.Verts), int(testParams().MaxVerticesPerPolygon))
	}
}

// buildStaircase emits 3 one-unit-deep treads along Y, each stepHeight
// higher than the last.
func buildStaircase(stepHeight float32) ([]float32, []int32) {
	var verts []float32
	var tris []int32
	for i := 0; i < 3; i++ {
		y0, y1 := float32(i), float32(i+1)
		z := float32(i) * stepHeight
		verts, tris = quad(verts, tris, 0, y0, 4, y1, z)
	}
	return verts, tris
}

// TestScenarioS4StaircaseWithinStep: a staircase whose step height
// equals max_traversable_step should connect into one region spanning
// all three treads.
func TestScenarioS4StaircaseWithinStep(t *testing.T) {
	params := testParams()
	params.MaxTraversableStep = 1
	verts, tris := buildStaircase(1)

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 8}

	result, err := BuildNavMesh(verts, tris, bmin, bmax, params)
	require.NoError(t, err)
	require.Len(t, result.Regions, 1, "a climbable staircase should form a single connected region")
}

// TestScenarioS5StaircaseExceedingStep: a staircase whose step height
// exceeds max_traversable_step should NOT connect the treads: each
// tread's open-heightfield spans get no neighbor link to the next,
// since the step between their floors exceeds max_traversable_step.
func TestScenarioS5StaircaseExceedingStep(t *testing.T) {
	params := testParams()
	params.MaxTraversableStep = 1
	verts, tris := buildStaircase(2)

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 8}

	result, err := BuildNavMesh(verts, tris, bmin, bmax, params)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.Regions), 2, "treads exceeding max_traversable_step should not merge into one region")
}

// TestScenarioS6SlopeAtMaxAngle: a sloped quad comfortably under
// max_traversable_angle is walkable and yields polygons; a markedly
// steeper slope with the same threshold is not. The boundary case of
// the slope's angle equaling max_traversable_angle exactly isn't probed
// here: walkability is a strict "exceeds cos(max_traversable_angle)"
// comparison, which is exact-equality-sensitive in floating point, so
// this test brackets the threshold well clear on both sides instead.
func TestScenarioS6SlopeAtMaxAngle(t *testing.T) {
	// A quad rising 4 units over a 4-unit run has a 45 degree slope.
	// Its two triangles are wound clockwise in XY so they face up.
	verts := []float32{
		0, 0, 0,
		4, 0, 0,
		4, 4, 4,
		0, 4, 4,
	}
	tris := []int32{0, 2, 1, 0, 3, 2}

	bmin := d3.Vec3{-1, -1, -1}
	bmax := d3.Vec3{5, 5, 8}

	params := testParams()
	params.MaxTraversableAngle = 50
	result, err := BuildNavMesh(verts, tris, bmin, bmax, params)
	require.NoError(t, err)
	require.NotEmpty(t, result.PolyMesh.Polys, "a slope comfortably under max_traversable_angle should be walkable")

	paramsSteep := testParams()
	paramsSteep.MaxTraversableAngle = 20
	resultSteep, err := BuildNavMesh(verts, tris, bmin, bmax, paramsSteep)
	require.NoError(t, err)
	require.Empty(t, resultSteep.PolyMesh.Polys, "a slope well past max_traversable_angle should produce no polygons")
}

func TestBuildNavMeshRejectsEmptyInput(t *testing.T) {
	_, err := BuildNavMesh(nil, nil, d3.Vec3{0, 0, 0}, d3.Vec3{1, 1, 1}, DefaultParams())
	require.Error(t, err)
	buildErr, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, EmptyInput, buildErr.Kind)
}

func TestBuildNavMeshRejectsZeroVolumeBounds(t *testing.T) {
	verts, tris := quad(nil, nil, 0, 0, 4, 4, 0)
	_, err := BuildNavMesh(verts, tris, d3.Vec3{0, 0, 0}, d3.Vec3{4, 4, 0}, DefaultParams())
	require.Error(t, err)
	buildErr, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, EmptyInput, buildErr.Kind)
}

func TestBuildNavMeshRejectsBadTriangleIndexCount(t *testing.T) {
	verts := []float32{0, 0, 0, 1, 0, 0, 1, 1, 0}
	tris := []int32{0, 1}
	_, err := BuildNavMesh(verts, tris, d3.Vec3{-1, -1, -1}, d3.Vec3{2, 2, 2}, DefaultParams())
	require.Error(t, err)
	buildErr, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, InvalidGeometry, buildErr.Kind)
}

func TestBuildNavMeshStopsAfterOpenHeightfieldWhenNotFullGeneration(t *testing.T) {
	params := testParams()
	params.PerformFullGeneration = false
	verts, tris := quad(nil, nil, 0, 0, 4, 4, 0)

	result, err := BuildNavMesh(verts, tris, d3.Vec3{-1, -1, -1}, d3.Vec3{5, 5, 5}, params)
	require.NoError(t, err)
	require.NotNil(t, result.OpenHeightfield)
	require.Nil(t, result.PolyMesh)
}
