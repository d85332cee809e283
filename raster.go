package celtic

import (
	"context"
	"image"
	"runtime"
	"sync"
)

// Raster is one completed escape-time frame: an iteration count per pixel.
// It is a snapshot derived from (viewport, mode, formula): recomputes
// replace it wholesale, nothing mutates it in place.
type Raster struct {
	Width, Height int
	MaxIter       int
	Counts        []int // row-major, len == Width*Height, each in [0, MaxIter]
}

// At returns the iteration count for a pixel.
func (r *Raster) At(px, py int) int {
	return r.Counts[py*r.Width+px]
}

const tileSize = 64

// ComputeRaster renders the escape-time counts for every pixel of the view.
// For each pixel the point is mapped to the plane, (z0, c) are chosen by
// mode, and the formula is stepped until |z| > 2 or maxIter steps; the count
// stored is the step index at which escape was detected, or maxIter.
//
// The computation is split into tiles rendered by a bounded worker pool
// (workers <= 0 means GOMAXPROCS). Workers write disjoint cells, so the only
// synchronization is the final join. Cancelling ctx abandons the frame
// between tiles and returns the context error; no partial raster is ever
// returned.
func ComputeRaster(ctx context.Context, view Viewport, mode Mode, f Formula, maxIter, workers int) (*Raster, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ras := &Raster{
		Width:   view.Width,
		Height:  view.Height,
		MaxIter: maxIter,
		Counts:  make([]int, view.Width*view.Height),
	}

	tiles := splitTiles(image.Rect(0, 0, view.Width, view.Height), tileSize, tileSize)
	tileCh := make(chan image.Rectangle)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range tileCh {
				if ctx.Err() != nil {
					continue // drain; the frame is already abandoned
				}
				renderTile(ras, tile, view, mode, f, maxIter)
			}
		}()
	}

	for _, tile := range tiles {
		tileCh <- tile
	}
	close(tileCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ras, nil
}

// renderTile fills one tile of the count grid. Tiles are disjoint, so this
// needs no locking.
func renderTile(ras *Raster, tile image.Rectangle, view Viewport, mode Mode, f Formula, maxIter int) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		row := ras.Counts[py*ras.Width : (py+1)*ras.Width]
		for px := tile.Min.X; px < tile.Max.X; px++ {
			row[px] = escapeCount(view, mode, f, px, py, maxIter)
		}
	}
}

// escapeCount iterates a single pixel to its stopping count.
func escapeCount(view Viewport, mode Mode, f Formula, px, py, maxIter int) int {
	z, c := mode.Params(view.ToComplex(px, py))
	n := 0
	for ; n < maxIter; n++ {
		z = f.Step(z, c)
		if diverged(z) {
			break
		}
	}
	return n
}

// splitTiles splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitTiles(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)

		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
