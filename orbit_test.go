package celtic

import (
	"math"
	"reflect"
	"testing"
)

// A fixed point is a period-1 cycle: under the tricorn map with c = 0 the
// origin maps straight back onto itself, so the very first step must close
// the cycle.
func TestAnalyze_FixedPointCycle(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 250}

	// Pixel (400, 300) maps to 0+0i.
	a := Analyze(view, Mode{}, FormulaTricorn, 400, 300, DefaultMaxOrbit, DefaultEpsilon)

	if a.Outcome != CycleDetected {
		t.Fatalf("Outcome = %v, want %v", a.Outcome, CycleDetected)
	}
	if a.Period != 1 {
		t.Errorf("Period = %d, want 1", a.Period)
	}
	if len(a.Orbit) != 1 || a.Orbit[0] != 0 {
		t.Errorf("Orbit = %v, want [0+0i]", a.Orbit)
	}
}

// A point far outside any bounded set must be classified as divergence
// within a couple of steps, never as budget exhaustion.
func TestAnalyze_FastDivergence(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 50}

	// Pixel (550, 450) maps to 3+3i.
	if got := view.ToComplex(550, 450); got != complex(3, 3) {
		t.Fatalf("test pixel maps to %v, want 3+3i", got)
	}

	a := Analyze(view, Mode{}, FormulaCeltic, 550, 450, DefaultMaxOrbit, DefaultEpsilon)

	if a.Outcome != Diverged {
		t.Fatalf("Outcome = %v, want %v", a.Outcome, Diverged)
	}
	if a.Period > 2 {
		t.Errorf("Period = %d, want <= 2", a.Period)
	}
	if len(a.Orbit) != a.Period {
		t.Errorf("len(Orbit) = %d, want Period = %d", len(a.Orbit), a.Period)
	}
}

func TestAnalyze_BudgetExhausted(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 250}

	// With cycle detection disabled (epsilon <= 0), the fixed point at the
	// origin can neither cycle nor diverge.
	a := Analyze(view, Mode{}, FormulaTricorn, 400, 300, 50, 0)

	if a.Outcome != BudgetExhausted {
		t.Fatalf("Outcome = %v, want %v", a.Outcome, BudgetExhausted)
	}
	if a.Period != 50 {
		t.Errorf("Period = %d, want 50", a.Period)
	}
	if len(a.Orbit) != 50 {
		t.Errorf("len(Orbit) = %d, want 50", len(a.Orbit))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 250, OffsetX: 30, OffsetY: -12}
	mode := JuliaAt(view, 420, 310)

	for _, f := range []Formula{FormulaCeltic, FormulaBuffalo, FormulaTricorn, FormulaPerpendicular} {
		a1 := Analyze(view, mode, f, 207, 455, DefaultMaxOrbit, DefaultEpsilon)
		a2 := Analyze(view, mode, f, 207, 455, DefaultMaxOrbit, DefaultEpsilon)
		if !reflect.DeepEqual(a1, a2) {
			t.Errorf("%v: repeated analyses differ: %+v vs %+v", f, a1, a2)
		}
	}
}

func TestAnalyze_OrbitLengthEqualsPeriod(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 250}

	for px := 0; px < view.Width; px += 97 {
		for py := 0; py < view.Height; py += 83 {
			a := Analyze(view, Mode{}, FormulaCeltic, px, py, 200, DefaultEpsilon)
			if len(a.Orbit) != a.Period {
				t.Fatalf("pixel (%d, %d): len(Orbit) = %d, Period = %d", px, py, len(a.Orbit), a.Period)
			}
			if a.Period < 1 || a.Period > 200 {
				t.Fatalf("pixel (%d, %d): Period = %d out of range", px, py, a.Period)
			}
		}
	}
}

// analyzeScan is the reference quadratic cycle detector: every new point is
// compared against the start value and every earlier orbit point. The
// cell-hash detector must make the identical decision at the identical step.
func analyzeScan(view Viewport, mode Mode, f Formula, px, py, maxOrbit int, epsilon float64) Analysis {
	z, c := mode.Params(view.ToComplex(px, py))

	history := []complex128{z}
	orbit := make([]complex128, 0, 16)
	for i := 0; i < maxOrbit; i++ {
		z = f.Step(z, c)
		orbit = append(orbit, z)

		cycle := false
		for _, p := range history {
			d := z - p
			if !math.IsNaN(real(d)) && !math.IsNaN(imag(d)) &&
				math.Hypot(real(d), imag(d)) < epsilon {
				cycle = true
				break
			}
		}
		if cycle {
			return Analysis{Period: len(orbit), Outcome: CycleDetected, Orbit: orbit}
		}
		if diverged(z) {
			return Analysis{Period: len(orbit), Outcome: Diverged, Orbit: orbit}
		}
		history = append(history, z)
	}
	return Analysis{Period: maxOrbit, Outcome: BudgetExhausted, Orbit: orbit}
}

func TestAnalyze_MatchesReferenceScan(t *testing.T) {
	view := Viewport{Width: 800, Height: 600, Zoom: 250}
	modes := []Mode{{}, JuliaAt(view, 350, 280)}

	for f := Formula(0); f.Valid(); f++ {
		for _, mode := range modes {
			for px := 5; px < view.Width; px += 61 {
				for py := 5; py < view.Height; py += 53 {
					got := Analyze(view, mode, f, px, py, 300, DefaultEpsilon)
					want := analyzeScan(view, mode, f, px, py, 300, DefaultEpsilon)
					if got.Outcome != want.Outcome || got.Period != want.Period {
						t.Fatalf("%v mode %+v pixel (%d, %d): got (%v, %d), scan says (%v, %d)",
							f, mode, px, py, got.Outcome, got.Period, want.Outcome, want.Period)
					}
				}
			}
		}
	}
}
