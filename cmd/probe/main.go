// probe analyzes the orbit of a single point (or a sweep of points) under a
// Celtic formula and prints the detected period, the tone pitch a sound
// layer would derive from it, and optionally the orbit itself.
package main

import (
	"flag"
	"fmt"
	"log"

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
		px       = flag.Int("x", 400, "query pixel x")
		py       = flag.Int("y", 300, "query pixel y")
		formula  = flag.Int("formula", 0, fmt.Sprintf("formula index in [0, %d)", celtic.FormulaCount))
		julia    = flag.Bool("julia", false, "analyze in Julia-style mode")
		jre      = flag.Float64("jre", real(celtic.Knotwork), "Julia parameter, real part")
		jim      = flag.Float64("jim", imag(celtic.Knotwork), "Julia parameter, imaginary part")
		maxOrbit = flag.Int("orbit", celtic.DefaultMaxOrbit, "orbit step budget")
		epsilon  = flag.Float64("epsilon", celtic.DefaultEpsilon, "cycle tolerance (plane units)")
		sweep    = flag.Int("sweep", 0, "analyze an NxN pixel grid instead of one point")
		showOrb  = flag.Bool("print-orbit", false, "print every orbit point")
	)
	flag.Parse()

	f := celtic.Formula(*formula)
	if !f.Valid() {
		return fmt.Errorf("formula %d out of range [0, %d)", *formula, celtic.FormulaCount)
	}
	if *zoom <= 0 {
		return fmt.Errorf("zoom must be > 0")
	}

	view := celtic.ViewAt(*width, *height, complex(*cx, *cy), *zoom)
	var mode celtic.Mode
	if *julia {
		mode = celtic.Mode{Julia: true, JuliaC: complex(*jre, *jim)}
	}

	if *sweep > 1 {
		return runSweep(view, mode, f, *sweep, *maxOrbit, *epsilon)
	}

	if !view.Contains(*px, *py) {
		// Out-of-bounds query points yield no period at all, which is not
		// the same thing as period 0.
		log.Printf("pixel (%d, %d) is outside the %dx%d raster: no period", *px, *py, *width, *height)
		return nil
	}

	a := celtic.Analyze(view, mode, f, *px, *py, *maxOrbit, *epsilon)
	p := view.ToComplex(*px, *py)
	log.Printf("point %v [%s]: period %d (%s), tone %.0f Hz",
		p, f, a.Period, a.Outcome, celtic.ToneFrequency(a.Period))

	if *showOrb {
		for i, z := range a.Orbit {
			fmt.Printf("%4d  %g\n", i+1, z)
		}
	}
	return nil
}

// runSweep walks an NxN grid over the raster and logs the period each time
// it changes, the way the interactive explorer logs the period under a
// moving cursor.
func runSweep(view celtic.Viewport, mode celtic.Mode, f celtic.Formula, n, maxOrbit int, epsilon float64) error {
	lastPeriod := celtic.NoPeriod
	for j := 0; j < n; j++ {
		py := j * (view.Height - 1) / (n - 1)
		for i := 0; i < n; i++ {
			px := i * (view.Width - 1) / (n - 1)

			a := celtic.Analyze(view, mode, f, px, py, maxOrbit, epsilon)
			if a.Period == lastPeriod {
				continue
			}
			lastPeriod = a.Period
			log.Printf("pixel (%3d, %3d) %v: period %d (%s)", px, py, view.ToComplex(px, py), a.Period, a.Outcome)
		}
	}
	return nil
}
