// Package filter builds the frequency-domain reconstruction filters used
// by filtered backprojection: the Ram-Lak ramp kernel and its windowed
// variants.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidSize reports a kernel length the construction cannot handle.
var ErrInvalidSize = errors.New("filter: kernel size must be positive and even")

// PaddedSize returns the filter length used for a detector row of the
// given length: the next power of two at or above twice the detector
// count, never below 64. The doubling leaves the frequency-domain
// multiplication room for the filter's spatial support, and the floor of
// 64 keeps very small geometries from degenerating.
func PaddedSize(detCount int) int {
	size := 64
	for size < 2*detCount {
		size *= 2
	}
	return size
}

// Ramp builds the discrete Ram-Lak ramp response of the given even
// length, indexed by DFT frequency bin (bin 0 is DC, bin size/2 the
// Nyquist frequency, upper bins the negative frequencies).
//
// The kernel is constructed by laying out the exact spatial-domain filter
// and transforming it, rather than sampling |f| directly in frequency;
// the spatial route keeps the small positive DC term the sampled ramp
// would lose and with it the mean level of reconstructions.
func Ramp(size int) ([]float64, error) {
	if size <= 0 || size%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	f := seed(size)

	// Real-input FFT gives the lower half spectrum; the ramp response is
	// twice its real part, mirrored onto the negative-frequency bins.
	fft := fourier.NewFFT(size)
	coeffs := fft.Coefficients(nil, f)

	kernel := make([]float64, size)
	for j := 0; j <= size/2; j++ {
		kernel[j] = 2 * real(coeffs[j])
	}
	for j := size/2 + 1; j < size; j++ {
		kernel[j] = kernel[size-j]
	}

	return kernel, nil
}

// seed lays out the spatial-domain Ram-Lak filter: 0.25 at the origin and
// -1/(pi*n)^2 at the odd offsets, where n runs 1,3,... up through half
// the length and back down again.
func seed(size int) []float64 {
	f := make([]float64, size)
	f[0] = 0.25

	ns := make([]int, 0, size/2)
	for v := 1; v <= size/2; v += 2 {
		ns = append(ns, v)
	}
	for v := size/2 - 1; v >= 1; v -= 2 {
		ns = append(ns, v)
	}

	for i, n := range ns {
		pin := math.Pi * float64(n)
		f[2*i+1] = -1 / (pin * pin)
	}

	return f
}

// Kernel builds the ramp response of the given length and applies the
// requested frequency window to it. WindowRamp returns the pure ramp.
func Kernel(size int, w Window) ([]float64, error) {
	kernel, err := Ramp(size)
	if err != nil {
		return nil, err
	}
	if w == WindowRamp {
		return kernel, nil
	}

	weights, err := windowWeights(size, w)
	if err != nil {
		return nil, err
	}
	vecmath.MulBlockInPlace(kernel, weights)

	return kernel, nil
}
