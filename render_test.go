package celtic

import (
	"image/color"
	"testing"
)

func rampRaster() *Raster {
	return &Raster{
		Width:   2,
		Height:  2,
		MaxIter: 100,
		Counts:  []int{0, 25, 50, 100},
	}
}

func TestGrayImage_Ramp(t *testing.T) {
	img := rampRaster().GrayImage()

	want := []struct {
		px, py int
		v      uint8
	}{
		{0, 0, 0},
		{1, 0, 63},  // 255*25/100
		{0, 1, 127}, // 255*50/100
		{1, 1, 255},
	}
	for _, w := range want {
		if got := img.GrayAt(w.px, w.py).Y; got != w.v {
			t.Errorf("GrayAt(%d, %d) = %d, want %d", w.px, w.py, got, w.v)
		}
	}
}

func TestHSVImage_InsideIsBlack(t *testing.T) {
	img := rampRaster().HSVImage()

	if got := img.RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel at maxIter rendered %v, want opaque black", got)
	}
	if got := img.RGBAAt(1, 0); got.R == 0 && got.G == 0 && got.B == 0 {
		t.Error("escaped pixel rendered black")
	}
}

func TestImage_PaletteSelection(t *testing.T) {
	r := rampRaster()

	if _, ok := r.Image(PaletteHSV).(interface{ RGBAAt(int, int) color.RGBA }); !ok {
		t.Error("hsv palette did not produce an RGBA image")
	}
	// Unknown palettes fall back to the gray ramp.
	if _, ok := r.Image(Palette("nope")).(interface{ GrayAt(int, int) color.Gray }); !ok {
		t.Error("unknown palette did not fall back to grayscale")
	}
}
