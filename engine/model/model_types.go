package model

import "github.com/go-gl/mathgl/mgl32"

// Topology is the primitive type a model's indices describe.
type Topology int

const (
	// TopologyTriangles draws every three indices as a filled triangle.
	TopologyTriangles Topology = iota

	// TopologyLines draws every two indices as a line segment.
	TopologyLines
)

// String returns a short name for the topology.
func (t Topology) String() string {
	if t == TopologyLines {
		return "lines"
	}
	return "triangles"
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest component of Size.
func (b Bounds) MaxExtent() float32 {
	s := b.Size()
	return max(s.X(), s.Y(), s.Z())
}

// ComputeBounds returns the bounding box of the given vertices, or a zero box when empty.
//
// Parameters:
//   - vertices: the vertices to enclose
//
// Returns:
//   - Bounds: the enclosing box
func ComputeBounds(vertices []GPUVertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := range 3 {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}
