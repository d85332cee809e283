package celtic

import (
	"image"
	"image/color"
	"math"
)

// Palette names a count-to-color mapping for rendered rasters.
type Palette string

const (
	PaletteGray Palette = "gray"
	PaletteHSV  Palette = "hsv"
)

// Image renders the raster with the named palette. Unknown palettes fall
// back to grayscale.
func (r *Raster) Image(p Palette) image.Image {
	if p == PaletteHSV {
		return r.HSVImage()
	}
	return r.GrayImage()
}

// GrayImage renders the raster as the classic brightness ramp
// 255 * count / maxIter.
func (r *Raster) GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for py := 0; py < r.Height; py++ {
		for px := 0; px < r.Width; px++ {
			v := uint8(255 * r.At(px, py) / r.MaxIter)
			img.SetGray(px, py, color.Gray{Y: v})
		}
	}
	return img
}

// HSVImage renders the raster with a hue cycle over the iteration count.
// Points that never escaped are black.
func (r *Raster) HSVImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for py := 0; py < r.Height; py++ {
		for px := 0; px < r.Width; px++ {
			n := r.At(px, py)
			var col color.RGBA
			if n >= r.MaxIter {
				col = color.RGBA{A: 255}
			} else {
				col = hsv(math.Mod(float64(n)*0.02, 1.0), 1, 1)
			}
			img.SetRGBA(px, py, col)
		}
	}
	return img
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
