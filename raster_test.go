package celtic

import (
	"context"
	"image"
	"testing"
)

func testView() Viewport {
	return Viewport{Width: 200, Height: 150, Zoom: 60}
}

func TestComputeRaster_GridComplete(t *testing.T) {
	view := testView()
	ras, err := ComputeRaster(context.Background(), view, Mode{}, FormulaCeltic, 100, 0)
	if err != nil {
		t.Fatalf("ComputeRaster: %v", err)
	}

	if ras.Width != view.Width || ras.Height != view.Height {
		t.Fatalf("raster is %dx%d, want %dx%d", ras.Width, ras.Height, view.Width, view.Height)
	}
	if len(ras.Counts) != view.Width*view.Height {
		t.Fatalf("len(Counts) = %d, want %d", len(ras.Counts), view.Width*view.Height)
	}
	for i, n := range ras.Counts {
		if n < 0 || n > 100 {
			t.Fatalf("Counts[%d] = %d, out of [0, 100]", i, n)
		}
	}
}

// A count below maxIter must mean the orbit escaped at exactly that step and
// at no earlier one.
func TestComputeRaster_DivergenceMonotonic(t *testing.T) {
	view := testView()
	const maxIter = 100
	ras, err := ComputeRaster(context.Background(), view, Mode{}, FormulaBuffalo, maxIter, 0)
	if err != nil {
		t.Fatalf("ComputeRaster: %v", err)
	}

	for px := 0; px < view.Width; px += 17 {
		for py := 0; py < view.Height; py += 13 {
			k := ras.At(px, py)
			if k == maxIter {
				continue
			}

			z, c := Mode{}.Params(view.ToComplex(px, py))
			for i := 0; i < k; i++ {
				z = FormulaBuffalo.Step(z, c)
				if diverged(z) {
					t.Fatalf("pixel (%d, %d): escaped at step %d, count says %d", px, py, i, k)
				}
			}
			z = FormulaBuffalo.Step(z, c)
			if !diverged(z) {
				t.Fatalf("pixel (%d, %d): count %d but orbit still bounded", px, py, k)
			}
		}
	}
}

// The tile workers write disjoint cells; any worker count must produce the
// identical grid.
func TestComputeRaster_WorkerCountIrrelevant(t *testing.T) {
	view := testView()
	mode := JuliaAt(view, 60, 40)

	serial, err := ComputeRaster(context.Background(), view, mode, FormulaPerpendicular, 80, 1)
	if err != nil {
		t.Fatalf("ComputeRaster(workers=1): %v", err)
	}
	parallel, err := ComputeRaster(context.Background(), view, mode, FormulaPerpendicular, 80, 7)
	if err != nil {
		t.Fatalf("ComputeRaster(workers=7): %v", err)
	}

	for i := range serial.Counts {
		if serial.Counts[i] != parallel.Counts[i] {
			t.Fatalf("Counts[%d] differs: serial %d, parallel %d", i, serial.Counts[i], parallel.Counts[i])
		}
	}
}

// Entering Julia mode fixes c for every pixel, so the raster must differ
// from the Mandelbrot-style one.
func TestComputeRaster_JuliaModeDiffers(t *testing.T) {
	view := testView()

	mandelbrot, err := ComputeRaster(context.Background(), view, Mode{}, FormulaCeltic, 100, 0)
	if err != nil {
		t.Fatalf("ComputeRaster: %v", err)
	}
	julia, err := ComputeRaster(context.Background(), view, JuliaAt(view, 80, 60), FormulaCeltic, 100, 0)
	if err != nil {
		t.Fatalf("ComputeRaster: %v", err)
	}

	same := true
	for i := range mandelbrot.Counts {
		if mandelbrot.Counts[i] != julia.Counts[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Julia raster is identical to the Mandelbrot-style raster")
	}
}

func TestComputeRaster_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ras, err := ComputeRaster(ctx, testView(), Mode{}, FormulaCeltic, 100, 2)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if ras != nil {
		t.Error("cancelled compute must not return a partial raster")
	}
}

func TestSplitTiles(t *testing.T) {
	tests := []struct {
		name         string
		rect         image.Rectangle
		tileW, tileH int
		wantCount    int
	}{
		{"exact fit", image.Rect(0, 0, 128, 64), 64, 64, 2},
		{"ragged edges", image.Rect(0, 0, 200, 150), 64, 64, 12},
		{"single tile", image.Rect(0, 0, 10, 10), 64, 64, 1},
		{"offset origin", image.Rect(100, 50, 228, 178), 64, 64, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := splitTiles(tt.rect, tt.tileW, tt.tileH)
			if len(tiles) != tt.wantCount {
				t.Fatalf("got %d tiles, want %d", len(tiles), tt.wantCount)
			}

			covered := 0
			for i, a := range tiles {
				if !a.In(tt.rect) {
					t.Fatalf("tile %v outside %v", a, tt.rect)
				}
				covered += a.Dx() * a.Dy()
				for _, b := range tiles[i+1:] {
					if a.Overlaps(b) {
						t.Fatalf("tiles %v and %v overlap", a, b)
					}
				}
			}
			if covered != tt.rect.Dx()*tt.rect.Dy() {
				t.Errorf("tiles cover %d pixels, want %d", covered, tt.rect.Dx()*tt.rect.Dy())
			}
		})
	}
}
