package scene

import "math"

// ProjectionMode selects how the field-of-view scalar becomes a screen scale.
type ProjectionMode uint8

const (
	// ProjectLinear uses scale = fov / depth. A larger fov enlarges the
	// image, the inverse of a camera field of view. This is the shipped
	// behavior and the default.
	ProjectLinear ProjectionMode = iota
	// ProjectTangent treats fov as a vertical angle in degrees:
	// scale = (h/2) / tan(fov/2) / depth.
	ProjectTangent
)

func (m ProjectionMode) String() string {
	if m == ProjectTangent {
		return "tangent"
	}
	return "linear"
}

// NearDepth is the minimum depth used for the perspective divide.
const NearDepth = Scalar(0.1)

// Projection maps camera-relative points onto a w×h screen.
type Projection struct {
	Width  int
	Height int
	FOV    Scalar
	Mode   ProjectionMode
}

// Project returns the screen position of the world-space point v seen from
// camera position cam. ok is false when v lies behind the camera; px and py
// are then zero and must not be trusted.
func (p Projection) Project(v, cam Vec3) (px, py Scalar, ok bool) {
	rel := v.Sub(cam)
	if rel.Z < 0 {
		return 0, 0, false
	}
	if rel.Z < NearDepth {
		rel.Z = NearDepth
	}

	scale := p.FOV / rel.Z
	if p.Mode == ProjectTangent {
		half := float64(p.FOV) * 0.5 * math.Pi / 180
		focal := Scalar(float64(p.Height/2) / math.Tan(half))
		scale = focal / rel.Z
	}

	px = Scalar(p.Width/2) + rel.X*scale
	py = Scalar(p.Height/2) - rel.Y*scale
	return px, py, true
}
