package tomo

import "fmt"

// Image is a batch of square single-channel images stored flat in
// row-major order, image by image: Data[(b*Size+row)*Size+col] holds the
// pixel at (row, col) of batch element b. Values are plain float64
// intensities; the operators impose no range.
type Image struct {
	Data []float64
	N    int // images in the batch
	Size int // edge length in pixels
}

// NewImage allocates a zero-filled image batch.
func NewImage(n, size int) *Image {
	return &Image{Data: make([]float64, n*size*size), N: n, Size: size}
}

// ImageFromData wraps an existing flat slice as an image batch, without
// copying. The slice length must match the batch dimensions exactly.
func ImageFromData(data []float64, n, size int) (*Image, error) {
	if len(data) != n*size*size {
		return nil, fmt.Errorf("%w: %d values cannot form %d images of %dx%d",
			ErrShapeMismatch, len(data), n, size, size)
	}
	return &Image{Data: data, N: n, Size: size}, nil
}

// At returns the pixel at (row, col) of batch element b.
func (im *Image) At(b, row, col int) float64 {
	return im.Data[(b*im.Size+row)*im.Size+col]
}

// Set writes the pixel at (row, col) of batch element b.
func (im *Image) Set(b, row, col int, v float64) {
	im.Data[(b*im.Size+row)*im.Size+col] = v
}

// plane returns the flat pixels of batch element b.
func (im *Image) plane(b int) []float64 {
	n := im.Size * im.Size
	return im.Data[b*n : (b+1)*n]
}

// Sinogram is a batch of projection sets stored flat with detector
// position as the row axis and angle as the column axis:
// Data[(b*Dets+det)*Angles+angle]. The detector count always equals the
// edge length of the projected images.
type Sinogram struct {
	Data   []float64
	N      int // batch size
	Dets   int // detector positions per angle
	Angles int // projection angles
}

// NewSinogram allocates a zero-filled sinogram batch.
func NewSinogram(n, dets, angles int) *Sinogram {
	return &Sinogram{Data: make([]float64, n*dets*angles), N: n, Dets: dets, Angles: angles}
}

// SinogramFromData wraps an existing flat slice as a sinogram batch,
// without copying. The slice length must match the batch dimensions.
func SinogramFromData(data []float64, n, dets, angles int) (*Sinogram, error) {
	if len(data) != n*dets*angles {
		return nil, fmt.Errorf("%w: %d values cannot form %d sinograms of %dx%d",
			ErrShapeMismatch, len(data), n, dets, angles)
	}
	return &Sinogram{Data: data, N: n, Dets: dets, Angles: angles}, nil
}

// At returns the projection value at (det, angle) of batch element b.
func (s *Sinogram) At(b, det, angle int) float64 {
	return s.Data[(b*s.Dets+det)*s.Angles+angle]
}

// Set writes the projection value at (det, angle) of batch element b.
func (s *Sinogram) Set(b, det, angle int, v float64) {
	s.Data[(b*s.Dets+det)*s.Angles+angle] = v
}

// plane returns the flat projection values of batch element b.
func (s *Sinogram) plane(b int) []float64 {
	n := s.Dets * s.Angles
	return s.Data[b*n : (b+1)*n]
}
