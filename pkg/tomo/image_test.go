package tomo

import (
	"errors"
	"testing"
)

func TestImageFromData(t *testing.T) {
	data := make([]float64, 2*4*4)
	img, err := ImageFromData(data, 2, 4)
	if err != nil {
		t.Fatalf("ImageFromData failed: %v", err)
	}
	if img.N != 2 || img.Size != 4 {
		t.Errorf("Expected batch of 2 4x4 images, got %d of %dx%d", img.N, img.Size, img.Size)
	}

	img.Set(1, 2, 3, 7.5)
	if v := img.At(1, 2, 3); v != 7.5 {
		t.Errorf("Expected 7.5 after Set, got %v", v)
	}
	if data[(1*4+2)*4+3] != 7.5 {
		t.Error("Expected ImageFromData to wrap the slice without copying")
	}

	if _, err := ImageFromData(make([]float64, 5), 2, 4); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for short slice, got %v", err)
	}
}

func TestSinogramFromData(t *testing.T) {
	data := make([]float64, 3*5*7)
	sino, err := SinogramFromData(data, 3, 5, 7)
	if err != nil {
		t.Fatalf("SinogramFromData failed: %v", err)
	}
	if sino.N != 3 || sino.Dets != 5 || sino.Angles != 7 {
		t.Errorf("Expected 3 sinograms of 5x7, got %d of %dx%d", sino.N, sino.Dets, sino.Angles)
	}

	sino.Set(2, 4, 6, -1.25)
	if v := sino.At(2, 4, 6); v != -1.25 {
		t.Errorf("Expected -1.25 after Set, got %v", v)
	}

	if _, err := SinogramFromData(data[:10], 3, 5, 7); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch for short slice, got %v", err)
	}
}

func TestNewImageZeroed(t *testing.T) {
	img := NewImage(2, 3)
	if len(img.Data) != 2*3*3 {
		t.Fatalf("Expected %d values, got %d", 2*3*3, len(img.Data))
	}
	for i, v := range img.Data {
		if v != 0 {
			t.Fatalf("Expected zero-filled image, got %v at index %d", v, i)
		}
	}
}
