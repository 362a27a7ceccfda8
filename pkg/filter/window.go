package filter

import (
	"errors"
	"fmt"
	"math"
)

// Window selects the frequency window applied on top of the ramp
// response. Windows trade resolution for noise suppression by damping
// high frequencies; the pure ramp keeps them all.
type Window int

const (
	WindowRamp Window = iota
	WindowSheppLogan
	WindowCosine
	WindowHamming
	WindowHann
)

// ErrUnknownWindow reports a window name or value outside the supported set.
var ErrUnknownWindow = errors.New("filter: unknown window")

var windowNames = map[Window]string{
	WindowRamp:       "ramp",
	WindowSheppLogan: "shepp-logan",
	WindowCosine:     "cosine",
	WindowHamming:    "hamming",
	WindowHann:       "hann",
}

func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("window(%d)", int(w))
}

// ParseWindow maps a window name to its Window value. Names match the
// conventional reconstruction filter names: "ramp", "shepp-logan",
// "cosine", "hamming" and "hann".
func ParseWindow(name string) (Window, error) {
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return WindowRamp, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}

// windowWeights returns the per-bin weights of a window, laid out in DFT
// bin order to match Ramp. The shifted windows are centered on DC: bin 0
// carries the window's midpoint and the Nyquist bin its ends.
func windowWeights(size int, w Window) ([]float64, error) {
	weights := make([]float64, size)

	switch w {
	case WindowSheppLogan:
		// sinc of the signed bin frequency; the DC bin stays at 1.
		weights[0] = 1
		for j := 1; j < size; j++ {
			freq := float64(j) / float64(size)
			if j >= size/2 {
				freq = float64(j-size) / float64(size)
			}
			omega := math.Pi * freq
			weights[j] = math.Sin(omega) / omega
		}
	case WindowCosine:
		for j := 0; j < size; j++ {
			m := (j + size/2) % size
			weights[j] = math.Sin(math.Pi * float64(m) / float64(size))
		}
	case WindowHamming:
		for j := 0; j < size; j++ {
			m := (j + size/2) % size
			weights[j] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(m)/float64(size-1))
		}
	case WindowHann:
		for j := 0; j < size; j++ {
			m := (j + size/2) % size
			weights[j] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(m)/float64(size-1))
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownWindow, w)
	}

	return weights, nil
}
