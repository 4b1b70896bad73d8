package resource

// ResourceManagerBuilderOption is a functional option applied to a ResourceManager during NewResourceManager.
type ResourceManagerBuilderOption func(*resourceManager)

// WithShaderValidation toggles the naga front-end check that runs before a shader module is created.
// Validation is on by default.
//
// Parameters:
//   - enabled: false to hand WGSL straight to the device
//
// Returns:
//   - ResourceManagerBuilderOption: a function that applies the validation setting
func WithShaderValidation(enabled bool) ResourceManagerBuilderOption {
	return func(rm *resourceManager) {
		rm.validateShaders = enabled
	}
}
