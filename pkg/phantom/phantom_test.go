package phantom

import (
	"math"
	"testing"
)

func TestSheppLoganLandmarks(t *testing.T) {
	size := 129
	img := SheppLogan(size)

	// Center: inside the skull and the brain ellipse only.
	if v := img[64*size+64]; math.Abs(v-0.2) > 1e-12 {
		t.Errorf("Expected 0.2 at phantom center, got %v", v)
	}

	// Top of the head: inside the skull, above the brain.
	if v := img[6*size+64]; v != 1 {
		t.Errorf("Expected 1 at top of skull, got %v", v)
	}

	// Right ventricle center: skull + brain + ventricle cancel to zero.
	if v := img[64*size+78]; math.Abs(v) > 1e-12 {
		t.Errorf("Expected 0 inside right ventricle, got %v", v)
	}

	// Corners are outside the head.
	for _, idx := range []int{0, size - 1, (size - 1) * size, size*size - 1} {
		if img[idx] != 0 {
			t.Errorf("Expected 0 outside the head at index %d, got %v", idx, img[idx])
		}
	}
}

func TestSheppLoganRange(t *testing.T) {
	img := SheppLogan(64)
	for i, v := range img {
		if v < -1e-12 || v > 1+1e-12 {
			t.Fatalf("Expected values in [0, 1], got %v at index %d", v, i)
		}
	}
}

func TestDisk(t *testing.T) {
	size := 33
	img := Disk(size, 0.5, 2.5)

	if v := img[16*size+16]; v != 2.5 {
		t.Errorf("Expected 2.5 at disk center, got %v", v)
	}
	if v := img[16*size+24]; v != 2.5 {
		t.Errorf("Expected 2.5 on the disk boundary, got %v", v)
	}
	if v := img[16*size+25]; v != 0 {
		t.Errorf("Expected 0 just outside the disk, got %v", v)
	}
	if v := img[0]; v != 0 {
		t.Errorf("Expected 0 at the corner, got %v", v)
	}

	// A centered disk is symmetric under transposition.
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if img[i*size+j] != img[j*size+i] {
				t.Fatalf("Expected transpose symmetry, mismatch at (%d,%d)", i, j)
			}
		}
	}
}
