package tomo

import "errors"

var (
	// ErrShapeMismatch reports input dimensions that do not match the
	// operator geometry. It is raised before any computation starts.
	ErrShapeMismatch = errors.New("tomo: shape mismatch")

	// ErrInvalidParams reports an operator configuration that cannot be
	// built, such as a non-positive angle count or image size.
	ErrInvalidParams = errors.New("tomo: invalid parameters")
)
