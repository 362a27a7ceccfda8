package filter

import (
	"errors"
	"math"
	"testing"
)

func TestWindowWeightsAnchors(t *testing.T) {
	size := 128
	nyquist := size / 2

	testCases := []struct {
		window    Window
		atDC      float64
		atNyquist float64
	}{
		{WindowSheppLogan, 1, 2 / math.Pi},
		{WindowCosine, 1, 0},
		{WindowHamming, 1, 0.08},
		{WindowHann, 1, 0},
	}

	for _, tc := range testCases {
		weights, err := windowWeights(size, tc.window)
		if err != nil {
			t.Fatalf("windowWeights(%v) failed: %v", tc.window, err)
		}
		if math.Abs(weights[0]-tc.atDC) > 1e-3 {
			t.Errorf("%v weight at DC: expected %v, got %v", tc.window, tc.atDC, weights[0])
		}
		if math.Abs(weights[nyquist]-tc.atNyquist) > 1e-12 {
			t.Errorf("%v weight at Nyquist: expected %v, got %v",
				tc.window, tc.atNyquist, weights[nyquist])
		}
	}
}

// Every window must damp the ramp at the Nyquist frequency and leave DC
// essentially untouched.
func TestKernelWindowDamping(t *testing.T) {
	size := 128
	ramp, err := Kernel(size, WindowRamp)
	if err != nil {
		t.Fatalf("Kernel(ramp) failed: %v", err)
	}

	for _, w := range []Window{WindowSheppLogan, WindowCosine, WindowHamming, WindowHann} {
		kernel, err := Kernel(size, w)
		if err != nil {
			t.Fatalf("Kernel(%v) failed: %v", w, err)
		}
		if kernel[size/2] >= ramp[size/2] {
			t.Errorf("%v: expected Nyquist response below %v, got %v",
				w, ramp[size/2], kernel[size/2])
		}
		if kernel[size/2] < 0 {
			t.Errorf("%v: expected non-negative Nyquist response, got %v", w, kernel[size/2])
		}
		if math.Abs(kernel[0]-ramp[0]) > 1e-3*ramp[0]+1e-15 {
			t.Errorf("%v: expected DC response %v to survive windowing, got %v",
				w, ramp[0], kernel[0])
		}
	}
}

func TestParseWindow(t *testing.T) {
	for w, name := range windowNames {
		parsed, err := ParseWindow(name)
		if err != nil {
			t.Errorf("ParseWindow(%q) failed: %v", name, err)
		}
		if parsed != w {
			t.Errorf("ParseWindow(%q): expected %v, got %v", name, w, parsed)
		}
		if w.String() != name {
			t.Errorf("String of %d: expected %q, got %q", int(w), name, w.String())
		}
	}

	if _, err := ParseWindow("blackman"); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("Expected ErrUnknownWindow for unsupported name, got %v", err)
	}
}

func TestKernelUnknownWindow(t *testing.T) {
	if _, err := Kernel(64, Window(99)); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("Expected ErrUnknownWindow for out-of-range window, got %v", err)
	}
}
