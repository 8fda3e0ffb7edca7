package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithTopology is an option builder that sets the primitive type of the Model.
//
// Parameters:
//   - t: lines or triangles
//
// Returns:
//   - ModelBuilderOption: a function that applies the topology option to a model
func WithTopology(t Topology) ModelBuilderOption {
	return func(m *model) {
		m.topology = t
	}
}

// WithVertices is an option builder that sets the mesh vertices.
//
// Parameters:
//   - vertices: the vertices to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertices option to a model
func WithVertices(vertices []GPUVertex) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the mesh indices.
//
// Parameters:
//   - indices: the indices to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}

// WithRevision is an option builder that tags a rebuilt model so cached GPU buffers
// for an older model of the same name are replaced.
//
// Parameters:
//   - rev: the revision
//
// Returns:
//   - ModelBuilderOption: a function that applies the revision option to a model
func WithRevision(rev uint64) ModelBuilderOption {
	return func(m *model) {
		m.revision = rev
	}
}
