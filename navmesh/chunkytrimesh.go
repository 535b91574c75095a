package navmesh

import "sort"

// chunkyThreshold is the triangle count from which (inclusive)
// RasterizeTriangles consults a ChunkyTriMesh instead of rasterizing
// every input triangle in turn.
const chunkyThreshold = 512

// ChunkyNode is one AABB-tree node, flattened into a pre-order array.
// A leaf holds a contiguous run of triangle indices [I, I+N). An
// internal node stores in I the index of the node immediately after its
// entire subtree (an "escape index"), so a non-overlapping internal
// node lets a traversal skip straight past its children without
// recursion bookkeeping.
type ChunkyNode struct {
	BMin, BMax [2]float32
	I, N       int32
	Leaf       bool
}

// ChunkyTriMesh is a 2D (XY) AABB tree over triangle soup, used to
// accelerate spatial queries over large meshes. RasterizeTriangles
// queries it once with the heightfield's XY bounds, so that triangles in
// chunks lying wholly outside the field are skipped; it does not query
// it per column.
type ChunkyTriMesh struct {
	Nodes  []ChunkyNode
	TriIdx []int32
}

const chunkyMaxTrisPerChunk = 256

// NewChunkyTriMesh builds a spatial index over the given triangle soup.
func NewChunkyTriMesh(verts []float32, tris []int32) *ChunkyTriMesh {
	ntris := len(tris) / 3
	tm := &ChunkyTriMesh{TriIdx: make([]int32, ntris)}
	items := make([]chunkyItem, ntris)
	for i := 0; i < ntris; i++ {
		a, b, c := tris[i*3], tris[i*3+1], tris[i*3+2]
		bmin, bmax := triBounds2D(verts, a, b, c)
		items[i] = chunkyItem{idx: int32(i), bmin: bmin, bmax: bmax}
	}
	tm.subdivide(items, 0, len(items))
	return tm
}

type chunkyItem struct {
	idx        int32
	bmin, bmax [2]float32
}

func triBounds2D(verts []float32, a, b, c int32) (bmin, bmax [2]float32) {
	bmin = [2]float32{verts[a*3], verts[a*3+1]}
	bmax = bmin
	for _, v := range [2]int32{b, c} {
		x, y := verts[v*3], verts[v*3+1]
		bmin[0] = math32Min(bmin[0], x)
		bmin[1] = math32Min(bmin[1], y)
		bmax[0] = math32Max(bmax[0], x)
		bmax[1] = math32Max(bmax[1], y)
	}
	return
}

func math32Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func calcExtents(items []chunkyItem) (bmin, bmax [2]float32) {
	bmin, bmax = items[0].bmin, items[0].bmax
	for _, it := range items[1:] {
		bmin[0] = math32Min(bmin[0], it.bmin[0])
		bmin[1] = math32Min(bmin[1], it.bmin[1])
		bmax[0] = math32Max(bmax[0], it.bmax[0])
		bmax[1] = math32Max(bmax[1], it.bmax[1])
	}
	return
}

func longestAxis(dx, dy float32) int {
	if dy > dx {
		return 1
	}
	return 0
}

// subdivide recursively partitions items[lo:hi], appending nodes to tm
// and triangle indices to tm.TriIdx: it sorts along the longest axis of
// the current extent and splits at the median.
func (tm *ChunkyTriMesh) subdivide(items []chunkyItem, lo, hi int) int32 {
	n := hi - lo
	bmin, bmax := calcExtents(items[lo:hi])
	nodeIdx := int32(len(tm.Nodes))

	if n <= chunkyMaxTrisPerChunk {
		tm.Nodes = append(tm.Nodes, ChunkyNode{BMin: bmin, BMax: bmax, Leaf: true, I: int32(len(tm.TriIdx)), N: int32(n)})
		for _, it := range items[lo:hi] {
			tm.TriIdx = append(tm.TriIdx, it.idx)
		}
		return nodeIdx
	}

	tm.Nodes = append(tm.Nodes, ChunkyNode{BMin: bmin, BMax: bmax, Leaf: false})

	axis := longestAxis(bmax[0]-bmin[0], bmax[1]-bmin[1])
	sub := items[lo:hi]
	sort.SliceStable(sub, func(i, j int) bool { return sub[i].bmin[axis] < sub[j].bmin[axis] })
	mid := lo + n/2

	tm.subdivide(items, lo, mid)
	tm.subdivide(items, mid, hi)

	tm.Nodes[nodeIdx].I = int32(len(tm.Nodes)) // escape index: past the whole subtree
	return nodeIdx
}

func checkOverlapRect(amin, amax, bmin, bmax [2]float32) bool {
	return !(amin[0] > bmax[0] || amax[0] < bmin[0] || amin[1] > bmax[1] || amax[1] < bmin[1])
}

// ChunksOverlappingRect returns the leaf-node indices whose bounds
// overlap [bmin,bmax].
func (tm *ChunkyTriMesh) ChunksOverlappingRect(bmin, bmax [2]float32) []int32 {
	var out []int32
	i := int32(0)
	for int(i) < len(tm.Nodes) {
		node := tm.Nodes[i]
		if !checkOverlapRect(node.BMin, node.BMax, bmin, bmax) {
			if node.Leaf {
				i++
			} else {
				i = node.I
			}
			continue
		}
		if node.Leaf {
			out = append(out, i)
		}
		i++
	}
	return out
}
