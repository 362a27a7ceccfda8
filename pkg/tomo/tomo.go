// Package tomo implements a matched pair of tomographic imaging
// operators: Radon, the forward transform projecting image batches into
// sinograms, and FBP, the filtered backprojection reconstructing images
// from sinograms. Both operators precompute their sampling geometry once
// at construction and never mutate it, so a single operator can be shared
// freely between goroutines; each call fans its work out over an internal
// worker pool.
package tomo

import (
	"fmt"
	"runtime"

	"radonfbp/pkg/filter"
)

// Params configures an operator pair. Angles and Size fix the geometry
// shared by both operators; the remaining fields steer backprojection.
type Params struct {
	// Angles is the number of projection angles spread evenly across the
	// half-open interval [0, pi).
	Angles int

	// Size is the edge length of the square images. The detector row
	// length of the sinograms equals it.
	Size int

	// Circle zeroes reconstructed pixels outside the inscribed circle,
	// where no full set of projection lines exists.
	Circle bool

	// Filtered selects ramp-filtered backprojection, the approximate
	// inverse of the forward projection. When false the operator applies
	// pure backprojection instead: the exact numerical transpose of
	// Project, used to validate the geometry by the adjoint identity.
	Filtered bool

	// Window is the frequency window applied to the ramp filter. Read
	// only when Filtered is set.
	Window filter.Window

	// Workers bounds the goroutines used per operator call; zero means
	// one per CPU.
	Workers int
}

// maxSize keeps the doubled detector count and the grid index arithmetic
// comfortably inside the int range.
const maxSize = 1 << 24

func (p Params) validate() error {
	if p.Angles < 1 {
		return fmt.Errorf("%w: angle count %d, need at least 1", ErrInvalidParams, p.Angles)
	}
	if p.Size < 1 {
		return fmt.Errorf("%w: image size %d, need at least 1", ErrInvalidParams, p.Size)
	}
	if p.Size > maxSize {
		return fmt.Errorf("%w: image size %d exceeds %d, no valid padded filter length",
			ErrInvalidParams, p.Size, maxSize)
	}
	return nil
}

func (p Params) workerCount() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.NumCPU()
}

// NewOperatorPair builds a Radon and an FBP operator from one validated
// parameter set. The two share identical geometry, so every sinogram
// produced by the first is accepted by the second.
func NewOperatorPair(p Params) (*Radon, *FBP, error) {
	radon, err := NewRadon(p)
	if err != nil {
		return nil, nil, err
	}
	fbp, err := NewFBP(p)
	if err != nil {
		return nil, nil, err
	}
	return radon, fbp, nil
}
