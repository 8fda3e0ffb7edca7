package loader

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithTargetSize sets the largest extent imported meshes are scaled to.
//
// Parameters:
//   - size: a positive size in world units
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size option to a loader
func WithTargetSize(size float32) LoaderBuilderOption {
	return func(l *loader) {
		if common.Finite(size) && size > 0 {
			l.targetSize = size
		}
	}
}

// WithColor sets the base color imported meshes are shaded with.
//
// Parameters:
//   - color: RGBA color
//
// Returns:
//   - LoaderBuilderOption: a function that applies the color option to a loader
func WithColor(color [4]float32) LoaderBuilderOption {
	return func(l *loader) {
		l.color = color
	}
}

// WithLightDirection sets the direction toward the light used for flat shading.
//
// Parameters:
//   - dir: a non-zero direction
//
// Returns:
//   - LoaderBuilderOption: a function that applies the light option to a loader
func WithLightDirection(dir mgl32.Vec3) LoaderBuilderOption {
	return func(l *loader) {
		if dir.Len() > 0 {
			l.lightDir = dir.Normalize()
		}
	}
}
