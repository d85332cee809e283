package celtic

import "math"

// Outcome classifies how a single orbit analysis terminated. None of these
// are errors; every analysis ends in exactly one of them.
type Outcome int

const (
	// CycleDetected means the orbit came within epsilon of an earlier state.
	CycleDetected Outcome = iota
	// Diverged means |z| exceeded the escape radius.
	Diverged
	// BudgetExhausted means neither happened within the step budget; the
	// reported period is the capped step count, not a true period.
	BudgetExhausted
)

func (o Outcome) String() string {
	switch o {
	case CycleDetected:
		return "cycle"
	case Diverged:
		return "diverged"
	case BudgetExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Analysis is the result of one orbit analysis. Period is the number of
// steps taken before the terminating condition; Orbit holds every iterated
// point, so len(Orbit) == Period.
type Analysis struct {
	Period  int
	Outcome Outcome
	Orbit   []complex128
}

// Analyze iterates the active formula from the mapped query pixel and
// reports the orbit's period. A cycle is detected when a new point lands
// within epsilon Euclidean distance of the start value or any earlier orbit
// point; divergence when |z| > 2 (non-finite values included). If neither
// occurs within maxOrbit steps the result is capped at maxOrbit.
//
// Epsilon is an absolute plane-space tolerance, deliberately left
// independent of zoom; pass epsilon <= 0 to disable cycle detection
// entirely. Each call is independent and deterministic.
func Analyze(view Viewport, mode Mode, f Formula, px, py int, maxOrbit int, epsilon float64) Analysis {
	z, c := mode.Params(view.ToComplex(px, py))

	seen := newPointSet(epsilon)
	seen.add(z)

	orbit := make([]complex128, 0, 16)
	for i := 0; i < maxOrbit; i++ {
		z = f.Step(z, c)
		orbit = append(orbit, z)
		if seen.near(z) {
			return Analysis{Period: len(orbit), Outcome: CycleDetected, Orbit: orbit}
		}
		if diverged(z) {
			return Analysis{Period: len(orbit), Outcome: Diverged, Orbit: orbit}
		}
		seen.add(z)
	}
	return Analysis{Period: maxOrbit, Outcome: BudgetExhausted, Orbit: orbit}
}

// pointSet is a spatial hash over visited orbit points, bucketed into cells
// of epsilon width. Probing the 3x3 cell neighborhood of a candidate reaches
// every stored point within epsilon of it, so near() makes exactly the same
// decision as a full scan of the history, in expected constant time per
// step instead of O(n).
type pointSet struct {
	eps   float64
	cells map[[2]int64][]complex128
}

func newPointSet(eps float64) *pointSet {
	return &pointSet{eps: eps, cells: make(map[[2]int64][]complex128)}
}

func (s *pointSet) cellOf(z complex128) [2]int64 {
	return [2]int64{
		int64(math.Floor(real(z) / s.eps)),
		int64(math.Floor(imag(z) / s.eps)),
	}
}

func (s *pointSet) add(z complex128) {
	if s.eps <= 0 {
		return
	}
	cell := s.cellOf(z)
	s.cells[cell] = append(s.cells[cell], z)
}

func (s *pointSet) near(z complex128) bool {
	if s.eps <= 0 {
		return false
	}
	re, im := real(z), imag(z)
	if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
		return false // overflow artifacts are the divergence check's problem
	}
	cell := s.cellOf(z)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, p := range s.cells[[2]int64{cell[0] + dx, cell[1] + dy}] {
				dre, dim := re-real(p), im-imag(p)
				if dre*dre+dim*dim < s.eps*s.eps {
					return true
				}
			}
		}
	}
	return false
}
