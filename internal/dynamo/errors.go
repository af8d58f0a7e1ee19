package dynamo

import "errors"

// Domain errors for engine operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrSurfaceUnmeasured indicates bounds were requested before the surface had a size.
	ErrSurfaceUnmeasured = errors.New("dynamo: surface not measured")

	// ErrUnknownLevel indicates a named stiffness, damping or friction level that does not exist.
	ErrUnknownLevel = errors.New("dynamo: unknown named level")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// ParamError wraps an error with the name and value of the offending parameter.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return e.Name + ": " + e.Wrapped.Error()
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
