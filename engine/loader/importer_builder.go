package loader

import "log/slog"

// ImporterBuilderOption is a functional option for configuring an Importer.
type ImporterBuilderOption func(*importer)

// WithWorkers sets the maximum number of concurrent import workers.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - ImporterBuilderOption: a function that applies the worker option to an importer
func WithWorkers(n int) ImporterBuilderOption {
	return func(im *importer) {
		im.workers = max(n, 1)
	}
}

// WithLogger sets the structured logger used for import diagnostics.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ImporterBuilderOption: a function that applies the logger option to an importer
func WithLogger(logger *slog.Logger) ImporterBuilderOption {
	return func(im *importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}
