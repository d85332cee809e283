package celtic

// Mode is the Mandelbrot/Julia iteration mode. In Mandelbrot-style mode the
// parameter c tracks the point itself; in Julia-style mode c is the fixed
// JuliaC seed. In both modes iteration starts from the point's own mapped
// value. JuliaC is only meaningful while Julia is set.
type Mode struct {
	Julia  bool
	JuliaC complex128
}

// Params returns the start value z0 and parameter c for the mapped point p.
func (m Mode) Params(p complex128) (z0, c complex128) {
	if m.Julia {
		return p, m.JuliaC
	}
	return p, p
}

// JuliaAt returns a Julia mode seeded from the given pixel. Called both when
// Julia mode is freshly entered and while it is held active with a moving
// cursor.
func JuliaAt(view Viewport, px, py int) Mode {
	return Mode{Julia: true, JuliaC: view.ToComplex(px, py)}
}
