// Package loader imports external mesh files into renderable models.
package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no backend handles.
	ErrUnsupportedFormat = errors.New("unsupported model format")

	// ErrEmptyMesh is returned when a file contains no usable triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeSTL selects the STL loader backend.
	BackendTypeSTL LoaderBackendType = iota
)

// revisions tags every built model so renderers can tell reloads of one path apart.
var revisions atomic.Uint64

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model
	backends   map[string]loaderBackend
	fallback   loaderBackend

	targetSize float32
	color      [4]float32
	lightDir   mgl32.Vec3
}

// Loader defines the public-facing interface for loading and caching meshes.
// Loaded meshes are centered on the origin, uniformly scaled so their largest extent
// equals the target size, and flat-shaded with a fixed directional light.
// Safe for concurrent use.
type Loader interface {
	// Load imports a mesh file and caches the result by path.
	// The backend is selected from the file extension.
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a mesh from a reader and caches it by name.
	// The name's extension selects the backend; names without one use the default backend.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Invalidate drops a cached model so the next Load reads the file again.
	//
	// Parameters:
	//   - name: the cache key to drop
	Invalidate(name string)

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified default backend and options applied.
//
// Parameters:
//   - backendType: the backend used for names without a known extension
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
		backends: map[string]loaderBackend{
			".stl": newSTLLoaderBackend(),
		},
		targetSize: 10,
		color:      [4]float32{0.75, 0.75, 0.78, 1},
		lightDir:   mgl32.Vec3{0.4, 0.8, 0.45}.Normalize(),
	}

	switch backendType {
	case BackendTypeSTL:
		l.fallback = l.backends[".stl"]
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path, false)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return l.store(path, imported)
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(name, true)
	if err != nil {
		return nil, err
	}

	imported, err := backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, imported)
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Invalidate(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.modelCache, name)
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend picks a backend by extension. Unknown extensions fail for paths; names
// without an extension fall back to the default backend when allowed.
func (l *loader) resolveBackend(name string, allowFallback bool) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	if allowFallback && ext == "" && l.fallback != nil {
		return l.fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func (l *loader) store(name string, imported *ImportedMesh) (model.Model, error) {
	m, err := l.build(name, imported)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}
	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()
	return m, nil
}

// build centers, scales and flat-shades the imported triangles.
func (l *loader) build(name string, imported *ImportedMesh) (model.Model, error) {
	var tris [][3]mgl32.Vec3
	var normals []mgl32.Vec3
	for i, t := range imported.Triangles {
		if !finiteVec(t[0]) || !finiteVec(t[1]) || !finiteVec(t[2]) {
			continue
		}
		n := mgl32.Vec3{}
		if i < len(imported.Normals) {
			n = imported.Normals[i]
		}
		if !finiteVec(n) || n.Len() < 1e-6 {
			n = t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
		}
		if n.Len() < 1e-12 {
			continue // degenerate
		}
		tris = append(tris, t)
		normals = append(normals, n.Normalize())
	}
	if len(tris) == 0 {
		return nil, ErrEmptyMesh
	}

	bounds := model.Bounds{Min: tris[0][0], Max: tris[0][0]}
	for _, t := range tris {
		for _, p := range t {
			for k := range 3 {
				bounds.Min[k] = min(bounds.Min[k], p[k])
				bounds.Max[k] = max(bounds.Max[k], p[k])
			}
		}
	}
	center := bounds.Center()
	scale := float32(1)
	if extent := bounds.MaxExtent(); extent > 0 {
		scale = l.targetSize / extent
	}

	vertices := make([]model.GPUVertex, 0, len(tris)*3)
	indices := make([]uint32, 0, len(tris)*3)
	for i, t := range tris {
		shade := 0.35 + 0.65*max(0, normals[i].Dot(l.lightDir))
		color := [4]float32{l.color[0] * shade, l.color[1] * shade, l.color[2] * shade, l.color[3]}
		for _, p := range t {
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, model.GPUVertex{
				Position: p.Sub(center).Mul(scale),
				Color:    color,
			})
		}
	}

	if imported.Name != "" {
		name = imported.Name
	}
	return model.NewModel(
		model.WithName(name),
		model.WithTopology(model.TopologyTriangles),
		model.WithVertices(vertices),
		model.WithIndices(indices),
		model.WithRevision(revisions.Add(1)),
	), nil
}

func finiteVec(v mgl32.Vec3) bool {
	return common.Finite(v[0]) && common.Finite(v[1]) && common.Finite(v[2])
}
