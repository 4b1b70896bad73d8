package app

import (
	"github.com/Carmen-Shannon/oxy-demo/engine"
)

// AppBuilderOption is a functional option for configuring Run.
type AppBuilderOption func(*app)

// WithConfigWatcher hot-reloads the rendering settings whenever the file at path changes.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithConfigWatcher(path string) AppBuilderOption {
	return func(a *app) {
		a.configPath = path
	}
}

// WithScenes registers additional scenes after the initial one. Keys 1 to 4 switch between the
// first four scenes in registration order.
//
// Parameters:
//   - factories: builders for the extra scenes
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithScenes(factories ...SceneFactory) AppBuilderOption {
	return func(a *app) {
		a.extraScenes = append(a.extraScenes, factories...)
	}
}

// WithEngineOptions passes options through to the GraphicsEngine.
//
// Parameters:
//   - opts: engine options, e.g. engine.WithProfiling(true)
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithEngineOptions(opts ...engine.GraphicsEngineBuilderOption) AppBuilderOption {
	return func(a *app) {
		a.engineOptions = append(a.engineOptions, opts...)
	}
}
