package scene

import (
	"fmt"
	"math"
)

// Kind selects a primitive from the shape catalog.
type Kind uint8

const (
	KindCube Kind = iota
	KindCone
	KindCylinder
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindCone:
		return "cone"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Catalog sizes.
const (
	ConeSides     = 12
	CylinderSides = 12
	SphereLat     = 6
	SphereLon     = 12
)

// Closed-form vertex and edge counts per kind.
const (
	CubeVertexCount = 8
	CubeEdgeCount   = 12

	ConeVertexCount = ConeSides + 1
	ConeEdgeCount   = ConeSides * 2

	CylinderVertexCount = CylinderSides * 2
	CylinderEdgeCount   = CylinderSides * 3

	SphereVertexCount = SphereLat * SphereLon
	// Meridians between every pair of adjacent rings, parallels on the
	// rings that are not collapsed onto a pole.
	SphereEdgeCount = (SphereLat-1)*SphereLon + (SphereLat-2)*SphereLon

	// MaxVertices bounds every topology in the catalog.
	MaxVertices = SphereVertexCount
)

// Counts returns the vertex and edge counts for k.
func (k Kind) Counts() (vertices, edges int) {
	switch k {
	case KindCube:
		return CubeVertexCount, CubeEdgeCount
	case KindCone:
		return ConeVertexCount, ConeEdgeCount
	case KindCylinder:
		return CylinderVertexCount, CylinderEdgeCount
	case KindSphere:
		return SphereVertexCount, SphereEdgeCount
	default:
		return 0, 0
	}
}

// Edge is an unordered pair of vertex indices.
type Edge [2]uint8

// Topology is the immutable vertex/edge structure of a primitive in
// object-local space.
type Topology struct {
	Vertices []Vec3
	Edges    []Edge
}

// NewTopology builds the topology for k. Unknown kinds yield an empty topology.
func NewTopology(k Kind) Topology {
	switch k {
	case KindCube:
		return cubeTopology()
	case KindCone:
		return coneTopology()
	case KindCylinder:
		return cylinderTopology()
	case KindSphere:
		return sphereTopology()
	default:
		return Topology{}
	}
}

func cubeTopology() Topology {
	return Topology{
		Vertices: []Vec3{
			{-1, -1, -1},
			{1, -1, -1},
			{1, 1, -1},
			{-1, 1, -1},
			{-1, -1, 1},
			{1, -1, 1},
			{1, 1, 1},
			{-1, 1, 1},
		},
		Edges: []Edge{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

func coneTopology() Topology {
	const n = ConeSides
	t := Topology{
		Vertices: make([]Vec3, ConeVertexCount),
		Edges:    make([]Edge, ConeEdgeCount),
	}
	t.Vertices[n] = Vec3{0, 2, 0}
	for i := 0; i < n; i++ {
		c, s := ringPoint(i, n)
		t.Vertices[i] = Vec3{c, -1, s}
		t.Edges[i] = Edge{uint8(i), uint8((i + 1) % n)}
		t.Edges[n+i] = Edge{uint8(i), n}
	}
	return t
}

func cylinderTopology() Topology {
	const n = CylinderSides
	t := Topology{
		Vertices: make([]Vec3, CylinderVertexCount),
		Edges:    make([]Edge, CylinderEdgeCount),
	}
	for i := 0; i < n; i++ {
		c, s := ringPoint(i, n)
		next := (i + 1) % n
		t.Vertices[i] = Vec3{c, -1, s}
		t.Vertices[n+i] = Vec3{c, 1, s}
		t.Edges[i] = Edge{uint8(i), uint8(next)}
		t.Edges[n+i] = Edge{uint8(n + i), uint8(n + next)}
		t.Edges[2*n+i] = Edge{uint8(i), uint8(n + i)}
	}
	return t
}

func sphereTopology() Topology {
	const (
		lat = SphereLat
		lon = SphereLon
	)
	t := Topology{
		Vertices: make([]Vec3, 0, SphereVertexCount),
		Edges:    make([]Edge, 0, SphereEdgeCount),
	}
	idx := func(i, j int) uint8 { return uint8(i*lon + j%lon) }

	for i := 0; i < lat; i++ {
		theta := float64(i) * math.Pi / float64(lat-1)
		st, ct := math.Sincos(theta)
		for j := 0; j < lon; j++ {
			phi := float64(j) * 2 * math.Pi / float64(lon)
			sp, cp := math.Sincos(phi)
			t.Vertices = append(t.Vertices, Vec3{
				X: Scalar(st * cp),
				Y: Scalar(st * sp),
				Z: Scalar(ct),
			})
		}
	}
	for i := 1; i < lat; i++ {
		for j := 0; j < lon; j++ {
			t.Edges = append(t.Edges, Edge{idx(i-1, j), idx(i, j)})
		}
	}
	for i := 1; i < lat-1; i++ {
		for j := 0; j < lon; j++ {
			t.Edges = append(t.Edges, Edge{idx(i, j), idx(i, j+1)})
		}
	}
	return t
}

// ringPoint returns (cos a, sin a) for the i-th of n points on the unit circle.
func ringPoint(i, n int) (c, s Scalar) {
	a := float64(i) * 2 * math.Pi / float64(n)
	sn, cs := math.Sincos(a)
	return Scalar(cs), Scalar(sn)
}
