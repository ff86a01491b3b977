package scene

import (
	"image/color"
	"math"

	"oledwire/gfx"

	"tinygo.org/x/drivers"
)

// Object is a topology placed in the world.
type Object struct {
	Kind     Kind
	Topology Topology

	// Offset is the world-space translation applied after rotation.
	Offset Vec3
	// Rotation holds Euler angles about X, Y and Z in radians.
	Rotation Vec3
}

// NewObject builds a fresh topology for k and places it at offset.
func NewObject(k Kind, offset, rotation Vec3) *Object {
	return &Object{
		Kind:     k,
		Topology: NewTopology(k),
		Offset:   offset,
		Rotation: rotation,
	}
}

// Per-frame rotation increments in radians. Object i turns by
// base + i*IndexStep on each axis.
const (
	StepX     = Scalar(0.1)
	StepY     = Scalar(0.03)
	StepZ     = Scalar(0.02)
	IndexStep = Scalar(0.01)
)

// Advance applies one frame of rotation for the object at position index in
// its scene.
func (o *Object) Advance(index int) {
	k := Scalar(index) * IndexStep
	o.Rotation.X = wrapTurn(o.Rotation.X + StepX + k)
	o.Rotation.Y = wrapTurn(o.Rotation.Y + StepY + k)
	o.Rotation.Z = wrapTurn(o.Rotation.Z + StepZ + k)
}

// wrapTurn subtracts one full turn when a exceeds it. Increments are far
// smaller than a turn so a single subtraction keeps the angle in range.
func wrapTurn(a Scalar) Scalar {
	if a > TwoPi {
		a -= TwoPi
	}
	return a
}

// Camera is the viewpoint. Direction is carried as state; projection looks
// down +Z regardless.
type Camera struct {
	Position  Vec3
	Direction Vec3
}

// Scene is a fixed list of objects seen through one camera.
type Scene struct {
	Camera     Camera
	FOV        Scalar
	Projection ProjectionMode

	width   int
	height  int
	objects []*Object
}

// New creates a scene for a w×h screen.
func New(w, h int, cam Camera, fov Scalar, objects ...*Object) *Scene {
	return &Scene{
		Camera:  cam,
		FOV:     fov,
		width:   w,
		height:  h,
		objects: objects,
	}
}

// Default scene constants.
const (
	DefaultFOV = Scalar(75)
)

// DefaultCamera sits 8 units in front of the origin looking down +Z.
func DefaultCamera() Camera {
	return Camera{
		Position:  V3(0, 0, -8),
		Direction: V3(0, 0, 1),
	}
}

// NewDefault lays out cube, cone, cylinder and sphere left to right.
func NewDefault(w, h int) *Scene {
	zero := Vec3{}
	return New(w, h, DefaultCamera(), DefaultFOV,
		NewObject(KindCube, V3(-4, 0, 0), zero),
		NewObject(KindCone, V3(-4.0/3, 0, 0), zero),
		NewObject(KindCylinder, V3(4.0/3, 0, 0), zero),
		NewObject(KindSphere, V3(4, 0, 0), zero),
	)
}

// Objects returns the scene's objects in draw order.
func (s *Scene) Objects() []*Object { return s.objects }

// Size returns the screen size the scene projects onto.
func (s *Scene) Size() (w, h int) { return s.width, s.height }

func (s *Scene) projection() Projection {
	return Projection{Width: s.width, Height: s.height, FOV: s.FOV, Mode: s.Projection}
}

// Draw rasterizes every object as a wireframe onto d.
func (s *Scene) Draw(d drivers.Displayer, c color.RGBA) {
	p := s.projection()
	for _, o := range s.objects {
		s.drawObject(d, p, o, c)
	}
}

// Animate advances every object by one frame.
func (s *Scene) Animate() {
	for i, o := range s.objects {
		o.Advance(i)
	}
}

// ProjectObject transforms and projects every vertex of o. The returned
// slices are indexed like o.Topology.Vertices; culled vertices keep zero
// coordinates and a false visibility flag.
func (s *Scene) ProjectObject(o *Object) (xs, ys []Scalar, visible []bool) {
	return s.projectObject(s.projection(), o)
}

func (s *Scene) projectObject(p Projection, o *Object) (xs, ys []Scalar, visible []bool) {
	n := len(o.Topology.Vertices)
	xs = make([]Scalar, n)
	ys = make([]Scalar, n)
	visible = make([]bool, n)
	for i, v := range o.Topology.Vertices {
		w := v.Rotate(o.Rotation).Add(o.Offset)
		xs[i], ys[i], visible[i] = p.Project(w, s.Camera.Position)
	}
	return xs, ys, visible
}

func (s *Scene) drawObject(d drivers.Displayer, p Projection, o *Object, c color.RGBA) {
	xs, ys, _ := s.projectObject(p, o)
	for _, e := range o.Topology.Edges {
		a, b := int(e[0]), int(e[1])
		if a >= len(xs) || b >= len(xs) {
			continue
		}
		gfx.DrawLine(d, toPixel(xs[a]), toPixel(ys[a]), toPixel(xs[b]), toPixel(ys[b]), c)
	}
}

// toPixel truncates toward zero after clamping into a range the line
// clipper handles without overflow.
func toPixel(v Scalar) int {
	const limit = math.MaxInt16
	switch {
	case v != v:
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(v)
}
