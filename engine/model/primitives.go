package model

import "github.com/go-gl/mathgl/mgl32"

// Stable names of the procedural meshes.
const (
	GizmoCubeName  = "gizmo.cube"
	GizmoEdgesName = "gizmo.edges"
	GridName       = "grid"
)

// FaceColors holds one RGBA color per cube side in the order front, back, left, right,
// top, bottom.
type FaceColors [6][4]float32

// DefaultFaceColors tints opposite sides with related hues so the orientation is readable.
var DefaultFaceColors = FaceColors{
	{0.30, 0.45, 0.90, 1}, // front  +Z
	{0.15, 0.22, 0.45, 1}, // back   -Z
	{0.45, 0.15, 0.15, 1}, // left   -X
	{0.90, 0.30, 0.30, 1}, // right  +X
	{0.30, 0.85, 0.40, 1}, // top    +Y
	{0.15, 0.42, 0.20, 1}, // bottom -Y
}

// cubeSides lists, per side, the outward normal and four corners wound counter-clockwise
// when viewed from outside.
var cubeSides = [6]struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// NewGizmoCube builds the solid gizmo cube centered at the origin with the given edge length.
// Each side has its own four vertices so it can carry a flat color.
//
// Parameters:
//   - size: edge length
//   - colors: per-side colors
//
// Returns:
//   - Model: a triangle model named GizmoCubeName
func NewGizmoCube(size float32, colors FaceColors) Model {
	h := size / 2
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for i, side := range cubeSides {
		base := uint32(len(vertices))
		for _, c := range side.corners {
			vertices = append(vertices, GPUVertex{Position: c.Mul(h), Color: colors[i]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewModel(
		WithName(GizmoCubeName),
		WithTopology(TopologyTriangles),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// NewCubeEdges builds the twelve outline edges of a cube slightly larger than size so
// they are not hidden by the faces.
//
// Parameters:
//   - size: edge length of the cube being outlined
//   - color: line color
//
// Returns:
//   - Model: a line model named GizmoEdgesName
func NewCubeEdges(size float32, color [4]float32) Model {
	h := size / 2 * 1.01
	vertices := make([]GPUVertex, 0, 8)
	for i := range 8 {
		p := mgl32.Vec3{-h, -h, -h}
		if i&1 != 0 {
			p[0] = h
		}
		if i&2 != 0 {
			p[1] = h
		}
		if i&4 != 0 {
			p[2] = h
		}
		vertices = append(vertices, GPUVertex{Position: p, Color: color})
	}
	var indices []uint32
	for i := uint32(0); i < 8; i++ {
		for _, bit := range []uint32{1, 2, 4} {
			if i&bit == 0 {
				indices = append(indices, i, i|bit)
			}
		}
	}
	return NewModel(
		WithName(GizmoEdgesName),
		WithTopology(TopologyLines),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// NewGrid builds a square ground grid in the XZ plane centered at the origin.
// halfLines lines run in each direction from the center line, so each axis gets
// 2*halfLines+1 lines. The two center lines use axisColor.
//
// Parameters:
//   - halfLines: lines on each side of the center
//   - spacing: distance between neighboring lines
//   - color: color of the regular lines
//   - axisColor: color of the center lines
//
// Returns:
//   - Model: a line model named GridName
func NewGrid(halfLines int, spacing float32, color, axisColor [4]float32) Model {
	if halfLines < 0 {
		halfLines = 0
	}
	extent := float32(halfLines) * spacing
	var vertices []GPUVertex
	var indices []uint32
	line := func(a, b mgl32.Vec3, c [4]float32) {
		base := uint32(len(vertices))
		vertices = append(vertices, GPUVertex{Position: a, Color: c}, GPUVertex{Position: b, Color: c})
		indices = append(indices, base, base+1)
	}
	for i := -halfLines; i <= halfLines; i++ {
		c := color
		if i == 0 {
			c = axisColor
		}
		o := float32(i) * spacing
		line(mgl32.Vec3{o, 0, -extent}, mgl32.Vec3{o, 0, extent}, c)
		line(mgl32.Vec3{-extent, 0, o}, mgl32.Vec3{extent, 0, o}, c)
	}
	return NewModel(
		WithName(GridName),
		WithTopology(TopologyLines),
		WithVertices(vertices),
		WithIndices(indices),
	)
}
