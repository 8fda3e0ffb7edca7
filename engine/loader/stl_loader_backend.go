package loader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"
)

// stlLoaderBackend reads ASCII and binary STL files.
type stlLoaderBackend struct{}

var _ loaderBackend = &stlLoaderBackend{}

func newSTLLoaderBackend() loaderBackend {
	return &stlLoaderBackend{}
}

func (b *stlLoaderBackend) Load(path string) (*ImportedMesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}
	return solidToMesh(solid), nil
}

// LoadReader buffers r because the STL reader seeks to tell ASCII from binary input.
func (b *stlLoaderBackend) LoadReader(r io.Reader) (*ImportedMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}
	return solidToMesh(solid), nil
}

func solidToMesh(solid *stl.Solid) *ImportedMesh {
	m := &ImportedMesh{
		Name:      solid.Name,
		Triangles: make([][3]mgl32.Vec3, len(solid.Triangles)),
		Normals:   make([]mgl32.Vec3, len(solid.Triangles)),
	}
	for i, t := range solid.Triangles {
		for j := range 3 {
			m.Triangles[i][j] = mgl32.Vec3(t.Vertices[j])
		}
		m.Normals[i] = mgl32.Vec3(t.Normal)
	}
	return m
}
