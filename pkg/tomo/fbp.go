package tomo

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"radonfbp/pkg/filter"
	"radonfbp/pkg/geometry"
	"radonfbp/pkg/interpolation"
)

// FBP is the backprojection operator. In filtered mode every detector
// column is ramp-filtered in the frequency domain and gathered back into
// the image through the backward sampling map, which approximates the
// inverse of the forward projection. In unfiltered mode the operator
// instead applies the exact transpose of Project over the same rotated
// grid; that pure backprojection is the adjoint used to validate the
// geometry, so it carries no filter and no Riemann scaling.
type FBP struct {
	angles   int
	size     int
	circle   bool
	filtered bool
	workers  int

	padded   int       // filter length, power of two at least 2*size
	kernel   []float64 // filter frequency response, nil when unfiltered
	backGrid []float64 // gather map, see geometry.BackwardGrid; nil when unfiltered
	fwdGrid  []float64 // scatter map for the transpose path; nil when filtered
	mask     []bool    // inscribed circle, nil when masking is off
}

// NewFBP builds the backprojection operator for the given geometry.
func NewFBP(p Params) (*FBP, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	f := &FBP{
		angles:   p.Angles,
		size:     p.Size,
		circle:   p.Circle,
		filtered: p.Filtered,
		workers:  p.workerCount(),
		padded:   filter.PaddedSize(p.Size),
	}

	if p.Filtered {
		kernel, err := filter.Kernel(f.padded, p.Window)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
		}
		f.kernel = kernel
		f.backGrid = geometry.BackwardGrid(p.Angles, p.Size)
	} else {
		f.fwdGrid = geometry.ForwardGrid(p.Angles, p.Size)
	}
	if p.Circle {
		f.mask = geometry.CircleMask(p.Size)
	}

	return f, nil
}

// Angles returns the number of projection angles.
func (f *FBP) Angles() int { return f.angles }

// Size returns the edge length of reconstructed images.
func (f *FBP) Size() int { return f.size }

// Filtered reports whether the operator applies the ramp filter.
func (f *FBP) Filtered() bool { return f.filtered }

// Circle reports whether reconstructions are masked to the inscribed circle.
func (f *FBP) Circle() bool { return f.circle }

// Reconstruct computes the image batch of a sinogram batch. The sinogram
// dimensions must match the operator geometry exactly.
func (f *FBP) Reconstruct(sino *Sinogram) (*Image, error) {
	if sino.Dets != f.size || sino.Angles != f.angles {
		return nil, fmt.Errorf("%w: sinogram is %d detectors x %d angles, operator expects %dx%d",
			ErrShapeMismatch, sino.Dets, sino.Angles, f.size, f.angles)
	}
	if len(sino.Data) != sino.N*sino.Dets*sino.Angles {
		return nil, fmt.Errorf("%w: sinogram data holds %d values, expected %d",
			ErrShapeMismatch, len(sino.Data), sino.N*sino.Dets*sino.Angles)
	}

	img := NewImage(sino.N, f.size)
	if sino.N == 0 {
		return img, nil
	}

	if f.filtered {
		filteredData, err := f.filterSinogram(sino)
		if err != nil {
			return nil, err
		}
		f.backproject(filteredData, img)
	} else {
		f.scatterTranspose(sino, img)
	}

	if f.mask != nil {
		f.applyMask(img)
	}

	return img, nil
}

// filterSinogram ramp-filters every detector column: zero-pad to the
// filter length, transform, multiply by the kernel, transform back and
// keep the real part of the leading detector samples. Each worker owns
// its FFT plan and scratch buffers; plans are not shared across
// goroutines.
func (f *FBP) filterSinogram(sino *Sinogram) ([]float64, error) {
	filtered := make([]float64, len(sino.Data))

	jobs := sino.N * f.angles
	workers := f.workers
	if workers > jobs {
		workers = jobs
	}
	jobsPerWorker := (jobs + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)
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

			plan, err := algofft.NewPlan64(f.padded)
			if err != nil {
				errs[workerID] = err
				return
			}
			timeBuf := make([]complex128, f.padded)
			freqBuf := make([]complex128, f.padded)

			size := f.size
			for job := start; job < end; job++ {
				b := job / f.angles
				k := job % f.angles

				for d := 0; d < size; d++ {
					timeBuf[d] = complex(sino.Data[(b*size+d)*f.angles+k], 0)
				}
				for d := size; d < f.padded; d++ {
					timeBuf[d] = 0
				}

				if err := plan.Forward(freqBuf, timeBuf); err != nil {
					errs[workerID] = err
					return
				}
				for j := range freqBuf {
					freqBuf[j] *= complex(f.kernel[j], 0)
				}
				if err := plan.Inverse(timeBuf, freqBuf); err != nil {
					errs[workerID] = err
					return
				}

				for d := 0; d < size; d++ {
					filtered[(b*size+d)*f.angles+k] = real(timeBuf[d])
				}
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("tomo: column filtering failed: %v", err)
		}
	}

	return filtered, nil
}

// backproject gathers the filtered sinogram into the image through the
// backward sampling map and sums over angles. The sum is scaled by the
// Riemann correction pi/(2*angles); the detector step factor is unity
// here since the detector count equals the image size.
func (f *FBP) backproject(filteredData []float64, img *Image) {
	size := f.size
	scale := math.Pi / (2 * float64(f.angles))

	n := len(filteredData) / (size * f.angles)
	jobs := n * size // one job per output image row
	workers := f.workers
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

			acc := make([]float64, size)
			row := make([]float64, size)

			for job := start; job < end; job++ {
				b := job / size
				r := job % size
				plane := filteredData[b*size*f.angles : (b+1)*size*f.angles]

				for i := range acc {
					acc[i] = 0
				}

				for k := 0; k < f.angles; k++ {
					base := (k*size + r) * size * 2
					for c := 0; c < size; c++ {
						a := f.backGrid[base+c*2]
						t := f.backGrid[base+c*2+1]
						row[c] = interpolation.Bilinear(plane, f.angles, size, a, t)
					}
					vecmath.AddBlockInPlace(acc, row)
				}

				out := img.Data[(b*size+r)*size : (b*size+r+1)*size]
				vecmath.ScaleBlock(out, acc, scale)
			}
		}(w)
	}
	wg.Wait()
}

// scatterTranspose applies the exact transpose of the forward projection:
// every sinogram value is deposited back into the image through the
// rotated grid with the same bilinear weights Project reads with. Workers
// split the angle range and accumulate into private planes, merged in
// worker order so results stay bit-deterministic.
func (f *FBP) scatterTranspose(sino *Sinogram, img *Image) {
	size := f.size

	for b := 0; b < sino.N; b++ {
		workers := f.workers
		if workers > f.angles {
			workers = f.angles
		}
		anglesPerWorker := (f.angles + workers - 1) / workers

		locals := make([][]float64, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)

			go func(workerID int) {
				defer wg.Done()

				start := workerID * anglesPerWorker
				end := start + anglesPerWorker
				if end > f.angles {
					end = f.angles
				}
				if start >= end {
					return
				}

				local := make([]float64, size*size)
				column := make([]float64, size)

				for k := start; k < end; k++ {
					for d := 0; d < size; d++ {
						column[d] = sino.Data[(b*size+d)*f.angles+k]
					}
					base := k * size * size * 2
					for i := 0; i < size; i++ {
						row := base + i*size*2
						for d := 0; d < size; d++ {
							x := f.fwdGrid[row+d*2]
							y := f.fwdGrid[row+d*2+1]
							interpolation.Scatter(local, size, size, x, y, column[d])
						}
					}
				}

				locals[workerID] = local
			}(w)
		}
		wg.Wait()

		plane := img.plane(b)
		for _, local := range locals {
			if local != nil {
				vecmath.AddBlockInPlace(plane, local)
			}
		}
	}
}

func (f *FBP) applyMask(img *Image) {
	n := f.size * f.size
	for b := 0; b < img.N; b++ {
		plane := img.Data[b*n : (b+1)*n]
		for i, inside := range f.mask {
			if !inside {
				plane[i] = 0
			}
		}
	}
}
