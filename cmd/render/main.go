// render is a one-shot CLI: it rasterizes a single Celtic fractal view and
// saves it as a PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	celtic "github.com/marben/celtic_explorer"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		width    = flag.Int("width", 800, "raster width in pixels")
		height   = flag.Int("height", 600, "raster height in pixels")
		zoom     = flag.Float64("zoom", 250, "pixels per plane unit")
		cx       = flag.Float64("cx", 0, "plane center, real part")
		cy       = flag.Float64("cy", 0, "plane center, imaginary part")
		formula  = flag.Int("formula", 0, fmt.Sprintf("formula index in [0, %d)", celtic.FormulaCount))
		landmark = flag.String("landmark", "", "named landmark (overrides zoom/center/formula)")
		julia    = flag.Bool("julia", false, "render in Julia-style mode")
		jre      = flag.Float64("jre", real(celtic.Knotwork), "Julia parameter, real part")
		jim      = flag.Float64("jim", imag(celtic.Knotwork), "Julia parameter, imaginary part")
		maxIter  = flag.Int("iter", celtic.DefaultMaxIter, "iteration budget per pixel")
		palette  = flag.String("palette", "gray", "palette: gray or hsv")
		workers  = flag.Int("workers", 0, "render workers (0 = GOMAXPROCS)")
		out      = flag.String("o", "celtic.png", "output file")
	)
	flag.Parse()

	view := celtic.ViewAt(*width, *height, complex(*cx, *cy), *zoom)
	f := celtic.Formula(*formula)
	if *landmark != "" {
		l, ok := celtic.LandmarkByName(*landmark)
		if !ok {
			return fmt.Errorf("unknown landmark %q", *landmark)
		}
		view = l.View(*width, *height)
		f = l.Formula
	}
	if !f.Valid() {
		return fmt.Errorf("formula %d out of range [0, %d)", *formula, celtic.FormulaCount)
	}
	if view.Zoom <= 0 {
		return fmt.Errorf("zoom must be > 0")
	}

	var mode celtic.Mode
	if *julia {
		mode = celtic.Mode{Julia: true, JuliaC: complex(*jre, *jim)}
	}

	log.Printf("rendering %dx%d at zoom %g with formula %q", *width, *height, view.Zoom, f)
	ras, err := celtic.ComputeRaster(context.Background(), view, mode, f, *maxIter, *workers)
	if err != nil {
		return fmt.Errorf("compute raster: %w", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, ras.Image(celtic.Palette(*palette))); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	log.Printf("rendered image saved to %q", *out)
	return nil
}
