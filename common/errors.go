package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an EngineError.
type ErrorKind int

const (
	ErrAdapterRequest ErrorKind = iota
	ErrDeviceRequest
	ErrSurfaceCreation
	ErrResourceNotFound
	ErrShaderCompilation
	ErrPipelineCreation
	ErrBufferCreation
	ErrRender
	ErrSceneNotFound
	ErrEventLoopCreation
	ErrEventLoopRun
	ErrConfig
)

var errorKindNames = map[ErrorKind]string{
	ErrAdapterRequest:    "Adapter request error",
	ErrDeviceRequest:     "Device request error",
	ErrSurfaceCreation:   "Surface creation error",
	ErrResourceNotFound:  "Resource not found",
	ErrShaderCompilation: "Shader compilation error",
	ErrPipelineCreation:  "Pipeline creation error",
	ErrBufferCreation:    "Buffer creation error",
	ErrRender:            "Render error",
	ErrSceneNotFound:     "Scene not found",
	ErrEventLoopCreation: "Event loop creation error",
	ErrEventLoopRun:      "Event loop run error",
	ErrConfig:            "Configuration error",
}

// String returns the human readable prefix used in error messages.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// EngineError is the single error type returned by engine operations.
// Kind identifies the failure class, Msg carries context, and Err holds the wrapped cause if any.
type EngineError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error formats the error as "<kind>: <msg>[: <cause>]".
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is matches any *EngineError with the same Kind, so errors.Is(err, &EngineError{Kind: k}) works.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates an EngineError without a wrapped cause.
//
// Parameters:
//   - kind: the error class
//   - format: printf-style message format
//   - args: message arguments
//
// Returns:
//   - error: the new *EngineError
func NewError(kind ErrorKind, format string, args ...any) error {
	return &EngineError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError creates an EngineError that wraps err.
// Returns nil if err is nil.
//
// Parameters:
//   - kind: the error class
//   - err: the underlying cause
//   - format: printf-style message format
//   - args: message arguments
//
// Returns:
//   - error: the new *EngineError, or nil
func WrapError(kind ErrorKind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &EngineError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether any error in err's chain is an EngineError of the given kind.
//
// Parameters:
//   - err: the error to inspect
//   - kind: the kind to match
//
// Returns:
//   - bool: true if a matching EngineError is found
func IsKind(err error, kind ErrorKind) bool {
	return errors.Is(err, &EngineError{Kind: kind})
}
