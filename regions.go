package celtic

// Landmark is a named starting point over the Celtic plane: a plane center,
// a zoom level and the formula it looks best under.
type Landmark struct {
	Name    string
	Center  complex128
	Zoom    float64
	Formula Formula
}

// View builds the landmark's viewport at the given raster dimensions.
func (l Landmark) View(width, height int) Viewport {
	return ViewAt(width, height, l.Center, l.Zoom)
}

// Classic landmarks in the Celtic family.
// Pass them to cmd/render via -landmark, or use them as starting views.
var (
	// Home – the whole set, centered on the origin
	Home = Landmark{
		Name:    "home",
		Center:  0,
		Zoom:    250,
		Formula: FormulaCeltic,
	}

	// Celtic Cross – the axis fold of the Celtic map, west of the main bulb
	CelticCross = Landmark{
		Name:    "cross",
		Center:  complex(-1.75, 0.02),
		Zoom:    4000,
		Formula: FormulaCeltic,
	}

	// Buffalo Horns – the doubly folded cusp of the Buffalo variant
	BuffaloHorns = Landmark{
		Name:    "horns",
		Center:  complex(-1.26, -0.38),
		Zoom:    2500,
		Formula: FormulaBuffalo,
	}

	// Tricorn Elbow – a corner of the conjugate map's threefold symmetry
	TricornElbow = Landmark{
		Name:    "elbow",
		Center:  complex(-0.17, -1.09),
		Zoom:    1800,
		Formula: FormulaTricorn,
	}

	// Perpendicular Claw – the asymmetric filament field of the fourth map
	PerpendicularClaw = Landmark{
		Name:    "claw",
		Center:  complex(-0.72, 0.62),
		Zoom:    3200,
		Formula: FormulaPerpendicular,
	}
)

// Landmarks lists every named landmark, for lookup by clients.
var Landmarks = []Landmark{Home, CelticCross, BuffaloHorns, TricornElbow, PerpendicularClaw}

// LandmarkByName returns the named landmark, or found == false.
func LandmarkByName(name string) (Landmark, bool) {
	for _, l := range Landmarks {
		if l.Name == name {
			return l, true
		}
	}
	return Landmark{}, false
}

// Julia seeds that produce richly structured Julia-style views.
var (
	// Knotwork – interlaced bands under the Celtic map
	Knotwork = complex(-0.51, 0.52)

	// Thistle – spiky, nearly connected Buffalo Julia
	Thistle = complex(-0.39, -0.59)

	// Triskele – three-armed Tricorn Julia
	Triskele = complex(0.28, 0.53)
)
