package navmesh

// BuildParams holds every tunable of the pipeline, marshaled to/from
// YAML build-settings files via gopkg.in/yaml.v2.
type BuildParams struct {
	CellSize                  float32 `yaml:"cell_size"`
	CellHeight                float32 `yaml:"cell_height"`
	MaxTraversableAngle       float32 `yaml:"max_traversable_angle"`
	MinTraversableHeight      float32 `yaml:"min_traversable_height"`
	MaxTraversableStep        float32 `yaml:"max_traversable_step"`
	SmoothingThreshold        int32   `yaml:"smoothing_threshold"`
	TraversableAreaBorderSize int32   `yaml:"traversable_area_border_size"`
	MinUnconnectedRegionSize  int32   `yaml:"min_unconnected_region_size"`
	MinMergeRegionSize        int32   `yaml:"min_merge_region_size"`
	UseConservativeExpansion  bool    `yaml:"use_conservative_expansion"`
	EdgeMaxDeviation          float32 `yaml:"edge_max_deviation"`
	MaxEdgeLength             float32 `yaml:"max_edge_length"`
	MaxVerticesPerPolygon     int32   `yaml:"max_vertices_per_polygon"`
	PerformFullGeneration     bool    `yaml:"perform_full_generation"`
}

// DefaultParams returns a reasonable default parameter set for human-scale
// geometry (world units roughly equivalent to centimeters).
func DefaultParams() BuildParams {
	return BuildParams{
		CellSize:                  30,
		CellHeight:                30,
		MaxTraversableAngle:       45,
		MinTraversableHeight:      100,
		MaxTraversableStep:        50,
		SmoothingThreshold:        2,
		TraversableAreaBorderSize: 1,
		MinUnconnectedRegionSize:  4,
		MinMergeRegionSize:        20,
		UseConservativeExpansion:  true,
		EdgeMaxDeviation:          50,
		MaxEdgeLength:             50,
		MaxVerticesPerPolygon:     6,
		PerformFullGeneration:     true,
	}
}

// Validate clamps p's fields to their legal ranges in place, returning an
// InvalidParameter BuildError only for values clamping cannot repair (a
// non-positive cell_size, cell_height or min_traversable_height, an
// out-of-range max_traversable_angle, or a negative max_traversable_step
// or traversable_area_border_size).
func (p *BuildParams) Validate() error {
	if p.CellSize <= 0 {
		return &BuildError{Kind: InvalidParameter, Message: "cell_size must be > 0"}
	}
	if p.CellHeight <= 0 {
		return &BuildError{Kind: InvalidParameter, Message: "cell_height must be > 0"}
	}
	if p.MaxTraversableAngle < 0 || p.MaxTraversableAngle > 89 {
		return &BuildError{Kind: InvalidParameter, Message: "max_traversable_angle must be within [0, 89]"}
	}
	if p.MinTraversableHeight <= 0 {
		return &BuildError{Kind: InvalidParameter, Message: "min_traversable_height must be > 0"}
	}
	if p.MaxTraversableStep < 0 {
		return &BuildError{Kind: InvalidParameter, Message: "max_traversable_step must be >= 0"}
	}
	if p.MaxVerticesPerPolygon < 3 {
		p.MaxVerticesPerPolygon = 3
	}
	if p.TraversableAreaBorderSize < 0 {
		return &BuildError{Kind: InvalidParameter, Message: "traversable_area_border_size must be >= 0"}
	}
	if p.MinUnconnectedRegionSize < 1 {
		p.MinUnconnectedRegionSize = 1
	}
	if p.MinMergeRegionSize < 0 {
		p.MinMergeRegionSize = 0
	}
	if p.EdgeMaxDeviation < 0 {
		p.EdgeMaxDeviation = 0
	}
	if p.MaxEdgeLength < 0 {
		p.MaxEdgeLength = 0
	}
	if p.MaxEdgeLength > 0 && p.MaxEdgeLength < p.CellSize {
		// 0 disables edge subdivision outright; any positive length below
		// cell_size would subdivide every edge into sub-voxel segments.
		p.MaxEdgeLength = p.CellSize
	}
	if p.SmoothingThreshold < 0 {
		p.SmoothingThreshold = 0
	}
	if p.SmoothingThreshold > 4 {
		p.SmoothingThreshold = 4
	}
	return nil
}
