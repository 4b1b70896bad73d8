package resource

// Uniform is a CPU-side value that can be uploaded into a uniform buffer.
// Marshal must return exactly Size() bytes in the std140-compatible layout the shader expects.
type Uniform interface {
	// Size returns the byte size of the uniform on the GPU.
	Size() int

	// Marshal serializes the uniform into its GPU byte layout.
	Marshal() []byte
}
