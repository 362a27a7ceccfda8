// Package phantom renders synthetic test images with known geometry for
// exercising the projection and reconstruction operators.
package phantom

import "math"

// ellipse is one additive component of the Shepp-Logan head phantom,
// with semi-axes a and b, center (x0, y0) and a counterclockwise
// rotation in degrees.
type ellipse struct {
	value float64
	a, b  float64
	x0    float64
	y0    float64
	phi   float64
}

// Modified Shepp-Logan intensity table (Toft). The soft-tissue
// intensities are raised from the 1974 original so the interior detail
// remains visible after rendering.
var sheppLoganEllipses = []ellipse{
	{1, 0.69, 0.92, 0, 0, 0},
	{-0.8, 0.6624, 0.8740, 0, -0.0184, 0},
	{-0.2, 0.1100, 0.3100, 0.22, 0, -18},
	{-0.2, 0.1600, 0.4100, -0.22, 0, 18},
	{0.1, 0.2100, 0.2500, 0, 0.35, 0},
	{0.1, 0.0460, 0.0460, 0, 0.1, 0},
	{0.1, 0.0460, 0.0460, 0, -0.1, 0},
	{0.1, 0.0460, 0.0230, -0.08, -0.605, 0},
	{0.1, 0.0230, 0.0230, 0, -0.606, 0},
	{0.1, 0.0230, 0.0460, 0.06, -0.605, 0},
}

// SheppLogan renders the modified Shepp-Logan head phantom as a flat
// row-major size x size image over the square [-1, 1] x [-1, 1], with
// row 0 at the top of the frame. Values lie in [0, 1].
func SheppLogan(size int) []float64 {
	type rotated struct {
		value  float64
		x0, y0 float64
		cos    float64
		sin    float64
		a2, b2 float64
	}
	shapes := make([]rotated, len(sheppLoganEllipses))
	for i, e := range sheppLoganEllipses {
		phi := e.phi * math.Pi / 180
		shapes[i] = rotated{
			value: e.value,
			x0:    e.x0,
			y0:    e.y0,
			cos:   math.Cos(phi),
			sin:   math.Sin(phi),
			a2:    e.a * e.a,
			b2:    e.b * e.b,
		}
	}

	img := make([]float64, size*size)
	for i := 0; i < size; i++ {
		y := axis(size-1-i, size)
		for j := 0; j < size; j++ {
			x := axis(j, size)

			var v float64
			for _, s := range shapes {
				dx := x - s.x0
				dy := y - s.y0
				xr := dx*s.cos + dy*s.sin
				yr := -dx*s.sin + dy*s.cos
				if xr*xr/s.a2+yr*yr/s.b2 <= 1 {
					v += s.value
				}
			}
			img[i*size+j] = v
		}
	}
	return img
}

// Disk renders a centered uniform disk of the given radius, in the same
// [-1, 1] coordinate frame as SheppLogan, as a flat row-major image.
func Disk(size int, radius, value float64) []float64 {
	img := make([]float64, size*size)
	r2 := radius * radius
	for i := 0; i < size; i++ {
		y := axis(size-1-i, size)
		for j := 0; j < size; j++ {
			x := axis(j, size)
			if x*x+y*y <= r2 {
				img[i*size+j] = value
			}
		}
	}
	return img
}

// axis maps pixel index i of an n-pixel axis onto [-1, 1], matching the
// sampling convention of the projection geometry.
func axis(i, n int) float64 {
	if n == 1 {
		return -1
	}
	return -1 + 2*float64(i)/float64(n-1)
}
