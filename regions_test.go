package celtic

import "testing"

func TestLandmarks_Sane(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range Landmarks {
		if l.Name == "" || seen[l.Name] {
			t.Errorf("landmark name %q empty or duplicated", l.Name)
		}
		seen[l.Name] = true
		if l.Zoom <= 0 {
			t.Errorf("landmark %q has zoom %v", l.Name, l.Zoom)
		}
		if !l.Formula.Valid() {
			t.Errorf("landmark %q names invalid formula %d", l.Name, l.Formula)
		}

		view := l.View(800, 600)
		if got := view.ToComplex(400, 300); !approxEq(got, l.Center, 1e-9) {
			t.Errorf("landmark %q view centers on %v, want %v", l.Name, got, l.Center)
		}
	}
}

func TestLandmarkByName(t *testing.T) {
	if l, ok := LandmarkByName("elbow"); !ok || l != TricornElbow {
		t.Errorf("LandmarkByName(elbow) = %+v, %v", l, ok)
	}
	if _, ok := LandmarkByName("atlantis"); ok {
		t.Error("unknown landmark reported as found")
	}
}
