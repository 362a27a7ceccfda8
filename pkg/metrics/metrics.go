// Package metrics scores reconstructed images against their reference
// images.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrShapeMismatch is returned when the two images cannot be compared
// value by value.
var ErrShapeMismatch = errors.New("metrics: shape mismatch")

// Report holds the quality scores of one reconstruction against its
// reference image.
type Report struct {
	// RMSE is the root mean square error between the images. Lower
	// values indicate better fidelity.
	RMSE float64

	// PSNR is the peak signal-to-noise ratio in decibels, with the peak
	// taken as the dynamic range of the reference. Infinite for an
	// exact match.
	PSNR float64

	// SSIM is the structural similarity index computed globally from
	// luminance, contrast and structure terms. Values range from -1 to
	// 1, with 1 indicating perfect similarity.
	SSIM float64

	// Correlation is the Pearson correlation coefficient between the
	// two images. NaN when either image is constant.
	Correlation float64
}

// String formats the report as a single line for console output.
func (r Report) String() string {
	return fmt.Sprintf("RMSE=%.4f PSNR=%.2fdB SSIM=%.4f corr=%.4f",
		r.RMSE, r.PSNR, r.SSIM, r.Correlation)
}

// Compare scores a reconstruction against its reference. Both slices
// must hold the same number of values and must not be empty.
func Compare(reference, reconstructed []float64) (Report, error) {
	if len(reference) != len(reconstructed) {
		return Report{}, fmt.Errorf("%w: %d vs %d values",
			ErrShapeMismatch, len(reference), len(reconstructed))
	}
	if len(reference) == 0 {
		return Report{}, fmt.Errorf("%w: empty input", ErrShapeMismatch)
	}

	dynamicRange := floats.Max(reference) - floats.Min(reference)

	report := Report{
		RMSE:        rmse(reference, reconstructed),
		SSIM:        ssim(reference, reconstructed, dynamicRange),
		Correlation: stat.Correlation(reference, reconstructed, nil),
	}
	report.PSNR = 20 * math.Log10(dynamicRange/report.RMSE)
	return report, nil
}

// rmse computes the root mean square error.
func rmse(reference, reconstructed []float64) float64 {
	return floats.Distance(reference, reconstructed, 2) / math.Sqrt(float64(len(reference)))
}

// ssim computes a global structural similarity index over the whole
// image, with the customary stabilizing constants k1=0.01 and k2=0.03
// scaled by the reference dynamic range.
func ssim(reference, reconstructed []float64, dynamicRange float64) float64 {
	const k1 = 0.01
	const k2 = 0.03

	c1 := (k1 * dynamicRange) * (k1 * dynamicRange)
	c2 := (k2 * dynamicRange) * (k2 * dynamicRange)

	muX := stat.Mean(reference, nil)
	muY := stat.Mean(reconstructed, nil)
	sigmaX := stat.Variance(reference, nil)
	sigmaY := stat.Variance(reconstructed, nil)
	sigmaXY := stat.Covariance(reference, reconstructed, nil)

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)

	if den > 0 {
		return num / den
	}
	return 0
}
