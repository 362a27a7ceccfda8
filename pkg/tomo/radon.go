package tomo

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"radonfbp/pkg/geometry"
	"radonfbp/pkg/interpolation"
)

// Radon is the forward projection operator. For every angle it samples
// the image on a rotated copy of the pixel grid and sums along the line
// direction, producing one detector column of the sinogram per angle.
type Radon struct {
	angles  int
	size    int
	grid    []float64 // rotated sampling grid, see geometry.ForwardGrid
	workers int
}

// NewRadon builds the forward projection operator for the given geometry.
// Only Angles, Size and Workers are read from the parameters.
func NewRadon(p Params) (*Radon, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Radon{
		angles:  p.Angles,
		size:    p.Size,
		grid:    geometry.ForwardGrid(p.Angles, p.Size),
		workers: p.workerCount(),
	}, nil
}

// Angles returns the number of projection angles.
func (r *Radon) Angles() int { return r.angles }

// Size returns the image edge length the operator accepts.
func (r *Radon) Size() int { return r.size }

// Project computes the sinogram batch of an image batch. The image is
// sampled bilinearly at the rotated grid positions with positions outside
// the image counting as zero, and the samples are summed along the
// projection line. Summation runs in pixel-spacing units, matching the
// scaling the backprojection normalization assumes.
func (r *Radon) Project(img *Image) (*Sinogram, error) {
	if img.Size != r.size {
		return nil, fmt.Errorf("%w: image size %d, operator expects %d",
			ErrShapeMismatch, img.Size, r.size)
	}
	if len(img.Data) != img.N*img.Size*img.Size {
		return nil, fmt.Errorf("%w: image data holds %d values, expected %d",
			ErrShapeMismatch, len(img.Data), img.N*img.Size*img.Size)
	}

	sino := NewSinogram(img.N, r.size, r.angles)

	jobs := img.N * r.angles
	if jobs == 0 {
		return sino, nil
	}
	workers := r.workers
	if workers > jobs {
		workers = jobs
	}
	jobsPerWorker := (jobs + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()

			start := workerID * jobsPerWorker
			end := start + jobsPerWorker
			if end > jobs {
				end = jobs
			}
			if start >= end {
				return
			}

			size := r.size
			column := make([]float64, size)
			samples := make([]float64, size)

			for job := start; job < end; job++ {
				b := job / r.angles
				k := job % r.angles
				plane := img.plane(b)

				for i := range column {
					column[i] = 0
				}

				// Walk the rotated grid one cross-line row at a time;
				// column[d] accumulates the full line integral seen by
				// detector d.
				base := k * size * size * 2
				for i := 0; i < size; i++ {
					row := base + i*size*2
					for d := 0; d < size; d++ {
						x := r.grid[row+d*2]
						y := r.grid[row+d*2+1]
						samples[d] = interpolation.Bilinear(plane, size, size, x, y)
					}
					vecmath.AddBlockInPlace(column, samples)
				}

				for d := 0; d < size; d++ {
					sino.Data[(b*size+d)*r.angles+k] = column[d]
				}
			}
		}(w)
	}
	wg.Wait()

	return sino, nil
}
