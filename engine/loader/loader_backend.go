package loader

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// ImportedMesh is the format-neutral triangle soup a backend produces.
type ImportedMesh struct {
	// Name is the mesh identifier stored in the file, if any.
	Name string

	// Triangles holds three corners per triangle in file order.
	Triangles [][3]mgl32.Vec3

	// Normals holds one facet normal per triangle; zero normals are recomputed from the winding.
	Normals []mgl32.Vec3
}

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., stlLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports a mesh from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *ImportedMesh: the imported mesh data
	//   - error: error if loading fails
	Load(path string) (*ImportedMesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *ImportedMesh: the imported mesh data
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*ImportedMesh, error)
}
