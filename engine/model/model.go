package model

// model is the implementation of the Model interface.
type model struct {
	name     string
	topology Topology
	vertices []GPUVertex
	indices  []uint32
	bounds   Bounds
	revision uint64

	vertexData, indexData []byte
}

// Model defines the interface for a renderable mesh.
// A Model is immutable once built: the renderer uploads its vertex and index data once
// and keys the GPU buffers by Name and Revision.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Topology reports whether indices describe lines or triangles.
	//
	// Returns:
	//   - Topology: the primitive type
	Topology() Topology

	// Vertices returns the mesh vertices.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices returns the mesh indices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// Bounds returns the axis-aligned bounding box of the vertices.
	//
	// Returns:
	//   - Bounds: the bounding box
	Bounds() Bounds

	// Revision distinguishes models rebuilt under the same name.
	//
	// Returns:
	//   - uint64: the revision
	Revision() uint64

	// VertexData returns the packed vertex buffer contents.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed index buffer contents.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Vertex and index data are packed and bounds computed after all options run.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	m.bounds = ComputeBounds(m.vertices)
	m.vertexData = MarshalVertices(m.vertices)
	m.indexData = MarshalIndices(m.indices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() Topology {
	return m.topology
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) Bounds() Bounds {
	return m.bounds
}

func (m *model) Revision() uint64 {
	return m.revision
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.indices)
}
