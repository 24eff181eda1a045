package spline

import (
	"fmt"
	"strings"

	"github.com/Faultbox/pathbuilder/pkg/math"
)

// TangentMode controls how the tangent solver treats a control point's handles.
type TangentMode int

const (
	// TangentAuto handles are derived from the neighboring points.
	TangentAuto TangentMode = iota
	// TangentFree handles were placed by hand and are never solved.
	TangentFree
	// TangentLinear handles point straight at the neighboring points.
	TangentLinear
	// TangentConstant handles sit on the vertex, giving a sharp corner.
	TangentConstant
)

var tangentModeNames = map[TangentMode]string{
	TangentAuto:     "auto",
	TangentFree:     "free",
	TangentLinear:   "linear",
	TangentConstant: "constant",
}

func (m TangentMode) String() string {
	if name, ok := tangentModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TangentMode(%d)", int(m))
}

// ParseTangentMode parses a mode name as produced by String.
// The empty string parses as TangentAuto.
func ParseTangentMode(s string) (TangentMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TangentAuto, nil
	}
	for mode, name := range tangentModeNames {
		if name == s {
			return mode, nil
		}
	}
	return TangentAuto, fmt.Errorf("unknown tangent mode %q", s)
}

// ControlPoint is a path vertex with two Bezier handles. The handles are
// offsets in the vertex frame's local space, so moving, rotating or scaling
// the vertex carries them along.
type ControlPoint struct {
	Vertex       Frame
	LeftTangent  math.Vec3
	RightTangent math.Vec3
	Mode         TangentMode
}

// NewControlPoint returns a control point at vertex with handles one unit
// behind and ahead along the local forward axis.
func NewControlPoint(vertex Frame) ControlPoint {
	return ControlPoint{
		Vertex:       vertex,
		LeftTangent:  math.Vec3Forward.Negate(),
		RightTangent: math.Vec3Forward,
		Mode:         TangentAuto,
	}
}

// Position returns the vertex position.
func (cp ControlPoint) Position() math.Vec3 {
	return cp.Vertex.Position
}

// LeftWorld returns the left (incoming) handle in parent space.
func (cp ControlPoint) LeftWorld() math.Vec3 {
	return cp.Vertex.ToWorld(cp.LeftTangent)
}

// RightWorld returns the right (outgoing) handle in parent space.
func (cp ControlPoint) RightWorld() math.Vec3 {
	return cp.Vertex.ToWorld(cp.RightTangent)
}

// SetLeftWorld places the left handle at a parent-space position.
func (cp *ControlPoint) SetLeftWorld(p math.Vec3) {
	cp.LeftTangent = cp.Vertex.ToLocal(p)
}

// SetRightWorld places the right handle at a parent-space position.
func (cp *ControlPoint) SetRightWorld(p math.Vec3) {
	cp.RightTangent = cp.Vertex.ToLocal(p)
}
