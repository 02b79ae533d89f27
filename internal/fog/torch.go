package fog

import (
	"image"
	"image/color"
	"math"
)

const (
	// torchRadiusFactor scales a cell's projected rectangle into its
	// erase radius: radius = 0.8 × max(width, height).
	torchRadiusFactor = 0.8

	// torchFullStop is the fraction of the radius that erases fully;
	// from there the erase fades linearly to nothing at the rim. 0.70
	// is a tuned product constant.
	torchFullStop = 0.70

	// torchMaskSize is the pixel edge of the prerendered gradient
	// sprite; each draw scales it to the cell's torch quad.
	torchMaskSize = 256
)

// newTorchMask builds the radial erase gradient: full alpha inside
// torchFullStop of the radius, a linear falloff to zero at the rim,
// nothing beyond. Under destination-out blending alpha means "how much
// fog to remove", so overlapping torches compose without seams.
func newTorchMask(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			d := math.Sqrt(dx*dx+dy*dy) / r
			var a float64
			switch {
			case d <= torchFullStop:
				a = 1
			case d < 1:
				a = 1 - (d-torchFullStop)/(1-torchFullStop)
			}
			if a <= 0 {
				continue
			}
			v := uint8(math.Round(a * 255))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return img
}
