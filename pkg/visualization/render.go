// Package visualization renders image and sinogram planes to grayscale
// files and reads grayscale input images back into operator planes.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	_ "image/jpeg" // register decoder for LoadGray

	"gonum.org/v1/gonum/floats"
)

// Render converts a flat row-major plane into a 16-bit grayscale image.
// The value range of the plane is windowed onto black..white; a constant
// plane renders mid-gray.
func Render(plane []float64, width, height int) (*image.Gray16, error) {
	if len(plane) != width*height {
		return nil, fmt.Errorf("visualization: %d values cannot form a %dx%d plane",
			len(plane), width, height)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("visualization: dimensions must be positive, got %dx%d", width, height)
	}

	lo := floats.Min(plane)
	hi := floats.Max(plane)
	scale := 0.0
	if hi > lo {
		scale = 65535 / (hi - lo)
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := plane[y*width+x]
			var value uint16
			if scale == 0 {
				value = 32768
			} else {
				value = uint16(math.Max(0, math.Min(65535, (v-lo)*scale)))
			}
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return img, nil
}

// SavePNG writes an image to disk as a PNG file.
func SavePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SavePlane renders a plane and writes it as a PNG file in one step.
func SavePlane(plane []float64, width, height int, filename string) error {
	img, err := Render(plane, width, height)
	if err != nil {
		return err
	}
	return SavePNG(img, filename)
}

// SaveSequence renders every plane of a flat batch into numbered PNG
// files named <prefix>_000.png, <prefix>_001.png and so on inside
// outputDir, creating the directory if needed.
func SaveSequence(batch []float64, width, height, count int, outputDir, prefix string) error {
	if len(batch) != width*height*count {
		return fmt.Errorf("visualization: %d values cannot form %d planes of %dx%d",
			len(batch), count, width, height)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	n := width * height
	for i := 0; i < count; i++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("%s_%03d.png", prefix, i))
		if err := SavePlane(batch[i*n:(i+1)*n], width, height, filename); err != nil {
			return err
		}
	}
	return nil
}

// LoadGray reads a PNG or JPEG image and returns it as a flat row-major
// plane with values scaled to [0, 1], along with its dimensions.
func LoadGray(filename string) ([]float64, int, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("visualization: decoding %s: %v", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	plane := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			plane[y*width+x] = float64(c.Y) / 65535
		}
	}
	return plane, width, height, nil
}
