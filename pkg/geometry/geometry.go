// Package geometry builds the deterministic sampling geometry shared by the
// projection and backprojection operators: the projection angle set, the
// rotated forward sampling grids, the adjoint backward sampling map and the
// reconstruction circle mask. All coordinates are normalized to [-1, 1] with
// endpoints on the outermost pixel centers (align-corners convention).
package geometry

import "math"

// Angles returns the projection angle set theta_k = k*pi/n for k = 0..n-1.
// The angles cover the half-open interval [0, pi); pi itself is never
// included since the opposite ray would duplicate the first measurement.
func Angles(n int) []float64 {
	angles := make([]float64, n)
	for k := 0; k < n; k++ {
		angles[k] = float64(k) * math.Pi / float64(n)
	}
	return angles
}

// lin returns the i-th of n normalized coordinates spanning [-1, 1] with
// both endpoints included. A single-point axis sits at -1.
func lin(i, n int) float64 {
	if n == 1 {
		return -1
	}
	return -1 + 2*float64(i)/float64(n-1)
}

// Coords returns all n normalized coordinates of an axis, lin(0..n-1, n).
func Coords(n int) []float64 {
	coords := make([]float64, n)
	for i := 0; i < n; i++ {
		coords[i] = lin(i, n)
	}
	return coords
}

// ForwardGrid builds the rotated sampling grids used by the forward
// projection. For angle k the image plane is sampled over a full rotated
// copy of the square [-1,1]x[-1,1]: entry (k, i, j) holds the sample
// position
//
//	x = cos(theta_k)*x_j + sin(theta_k)*y_i
//	y = -sin(theta_k)*x_j + cos(theta_k)*y_i
//
// where x_j = lin(j, size) is the detector position and y_i = lin(i, size)
// the position along the projection line. The x component addresses image
// columns and the y component image rows. Storage is flat with the two
// components interleaved:
//
//	grid[((k*size+i)*size+j)*2+0] = x
//	grid[((k*size+i)*size+j)*2+1] = y
func ForwardGrid(angles, size int) []float64 {
	grid := make([]float64, angles*size*size*2)
	coords := Coords(size)

	idx := 0
	for _, theta := range Angles(angles) {
		c := math.Cos(theta)
		s := math.Sin(theta)
		for i := 0; i < size; i++ {
			y := coords[i]
			for j := 0; j < size; j++ {
				x := coords[j]
				grid[idx] = c*x + s*y
				grid[idx+1] = -s*x + c*y
				idx += 2
			}
		}
	}

	return grid
}

// BackwardGrid builds the sampling map used by backprojection, the
// geometric adjoint of ForwardGrid. For angle k and output pixel
// (row r, col c) it pairs the normalized angle coordinate a_k = lin(k, angles)
// with the detector coordinate
//
//	t = x_c*cos(theta_k) - y_r*sin(theta_k)
//
// so that sampling a sinogram plane (detector rows, angle columns) at
// (a_k, t) reads back the projection value this pixel contributed to.
// Storage matches ForwardGrid:
//
//	grid[((k*size+r)*size+c)*2+0] = a_k
//	grid[((k*size+r)*size+c)*2+1] = t
func BackwardGrid(angles, size int) []float64 {
	grid := make([]float64, angles*size*size*2)
	coords := Coords(size)

	idx := 0
	for k, theta := range Angles(angles) {
		a := lin(k, angles)
		c := math.Cos(theta)
		s := math.Sin(theta)
		for r := 0; r < size; r++ {
			y := coords[r]
			for col := 0; col < size; col++ {
				x := coords[col]
				grid[idx] = a
				grid[idx+1] = x*c - y*s
				idx += 2
			}
		}
	}

	return grid
}

// CircleMask reports which pixels lie inside the inscribed reconstruction
// circle x^2 + y^2 <= 1. Pixels outside the circle are not crossed by a
// full set of projection lines and carry no reliable reconstruction; the
// backprojection operator zeroes them when circle masking is enabled.
// The mask is stored flat row-major, mask[row*size+col].
func CircleMask(size int) []bool {
	mask := make([]bool, size*size)
	coords := Coords(size)

	for i := 0; i < size; i++ {
		y := coords[i]
		for j := 0; j < size; j++ {
			x := coords[j]
			mask[i*size+j] = x*x+y*y <= 1
		}
	}

	return mask
}
