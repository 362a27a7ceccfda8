// Package interpolation implements bilinear sampling of flat row-major
// planes in normalized coordinates, together with its exact transpose
// (scatter). Both directions share one coordinate convention so that
// gather and scatter form an adjoint pair.
package interpolation

import "math"

// PixelCoord maps a normalized coordinate u onto a fractional pixel index
// along an axis with n samples. The convention is align-corners: u = -1 is
// the center of the first pixel and u = +1 the center of the last. For a
// single-sample axis every u maps onto index 0.
func PixelCoord(u float64, n int) float64 {
	return (u + 1) / 2 * float64(n-1)
}

// Bilinear samples plane (height rows by width columns, row-major) at the
// normalized position (x, y), where x addresses columns and y rows.
// Neighbor pixels outside the plane contribute zero, so positions beyond
// [-1, 1] fade to zero over one pixel spacing. This zero-outside rule is
// part of the operator contract; changing it shifts projection values near
// the image border.
func Bilinear(plane []float64, width, height int, x, y float64) float64 {
	px := PixelCoord(x, width)
	py := PixelCoord(y, height)

	x0 := int(math.Floor(px))
	y0 := int(math.Floor(py))
	x1 := x0 + 1
	y1 := y0 + 1
	fx := px - float64(x0)
	fy := py - float64(y0)

	var v float64
	if y0 >= 0 && y0 < height {
		row := y0 * width
		if x0 >= 0 && x0 < width {
			v += (1 - fy) * (1 - fx) * plane[row+x0]
		}
		if x1 >= 0 && x1 < width {
			v += (1 - fy) * fx * plane[row+x1]
		}
	}
	if y1 >= 0 && y1 < height {
		row := y1 * width
		if x0 >= 0 && x0 < width {
			v += fy * (1 - fx) * plane[row+x0]
		}
		if x1 >= 0 && x1 < width {
			v += fy * fx * plane[row+x1]
		}
	}

	return v
}

// Scatter is the transpose of Bilinear: it deposits value into the four
// neighbor pixels of the normalized position (x, y) using the same weights
// Bilinear would read with. Out-of-bounds neighbors are dropped. For any
// plane p, point set and values v,
//
//	sum_i v_i * Bilinear(p, x_i, y_i) == sum_px p * scattered(v)
//
// up to rounding, which is what makes a projector built on Bilinear and a
// backprojector built on Scatter numerically adjoint.
func Scatter(plane []float64, width, height int, x, y, value float64) {
	px := PixelCoord(x, width)
	py := PixelCoord(y, height)

	x0 := int(math.Floor(px))
	y0 := int(math.Floor(py))
	x1 := x0 + 1
	y1 := y0 + 1
	fx := px - float64(x0)
	fy := py - float64(y0)

	if y0 >= 0 && y0 < height {
		row := y0 * width
		if x0 >= 0 && x0 < width {
			plane[row+x0] += (1 - fy) * (1 - fx) * value
		}
		if x1 >= 0 && x1 < width {
			plane[row+x1] += (1 - fy) * fx * value
		}
	}
	if y1 >= 0 && y1 < height {
		row := y1 * width
		if x0 >= 0 && x0 < width {
			plane[row+x0] += fy * (1 - fx) * value
		}
		if x1 >= 0 && x1 < width {
			plane[row+x1] += fy * fx * value
		}
	}
}
