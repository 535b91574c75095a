package navmesh

import "fmt"

// ErrorKind classifies a BuildError.
type ErrorKind int

const (
	// EmptyInput means the input mesh has zero triangles or a
	// zero-volume bounding box.
	EmptyInput ErrorKind = iota
	// InvalidParameter means a BuildParams field failed validation.
	InvalidParameter
	// InvalidGeometry means the input mesh is malformed (fewer than 3
	// vertices, or an index count not a multiple of 3).
	InvalidGeometry
	// TriangulationFailure means a contour ring could not be
	// triangulated. Reserved for API completeness: BuildPolyMesh
	// currently recovers from this by skipping the offending contour
	// and logging a warning (see polymesh.go), rather than aborting
	// the whole build.
	TriangulationFailure
	// MergeFailure means two candidate polygons could not be merged.
	// Reserved for API completeness; see TriangulationFailure.
	MergeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case InvalidParameter:
		return "invalid parameter"
	case InvalidGeometry:
		return "invalid geometry"
	case TriangulationFailure:
		return "triangulation failure"
	case MergeFailure:
		return "merge failure"
	default:
		return "unknown error"
	}
}

// BuildError is returned by BuildNavMesh when the pipeline cannot run
// to completion.
type BuildError struct {
	Kind    ErrorKind
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("navmesh: %s: %s", e.Kind, e.Message)
}
