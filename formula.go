package celtic

import "math"

// Formula selects one of the Celtic iteration maps. The set is closed and
// dispatched through a single switch in Step; adding a variant means adding
// an enum value, a Step case and a name; the raster engine and the analyzer
// are untouched.
type Formula int

const (
	// FormulaCeltic is abs(re(z^2)) + i*im(z^2) + c.
	FormulaCeltic Formula = iota
	// FormulaBuffalo is abs(re(z^2)) + i*abs(im(z^2)) + c.
	FormulaBuffalo
	// FormulaTricorn is re(z^2) - i*im(z^2) + c, the conjugate-square map.
	FormulaTricorn
	// FormulaPerpendicular is abs(re(z)*abs(re(z)) + im(z)^2) + 2i*re(z)*im(z) + c.
	FormulaPerpendicular

	FormulaCount = iota
)

var formulaNames = [FormulaCount]string{
	"abs(re(z^2)) + i*im(z^2) + c",
	"abs(re(z^2)) + i*abs(im(z^2)) + c",
	"re(z^2) - i*im(z^2) + c",
	"abs(re(z)*abs(re(z)) + im(z)^2) + 2i*re(z)*im(z) + c",
}

func (f Formula) String() string {
	if !f.Valid() {
		return "invalid formula"
	}
	return formulaNames[f]
}

// Valid reports whether f names one of the registered formulas.
func (f Formula) Valid() bool {
	return f >= 0 && f < FormulaCount
}

// Step applies one iteration of the map to (z, c). It is pure and total over
// finite inputs; overflow may produce non-finite values, which callers
// classify as divergence.
func (f Formula) Step(z, c complex128) complex128 {
	re, im := real(z), imag(z)
	re2 := re*re - im*im
	im2 := 2 * re * im
	switch f {
	case FormulaCeltic:
		return complex(math.Abs(re2), im2) + c
	case FormulaBuffalo:
		return complex(math.Abs(re2), math.Abs(im2)) + c
	case FormulaTricorn:
		return complex(re2, -im2) + c
	case FormulaPerpendicular:
		return complex(math.Abs(re*math.Abs(re)+im*im), 2*re*im) + c
	default:
		panic("celtic: unknown formula")
	}
}

// escapeRadiusSq is the squared divergence threshold |z| > 2.
const escapeRadiusSq = 4.0

// diverged classifies z as escaped. The negated comparison deliberately
// sends NaN components (overflow artifacts) down the diverged path instead
// of letting them leak into later comparisons.
func diverged(z complex128) bool {
	re, im := real(z), imag(z)
	return !(re*re+im*im <= escapeRadiusSq)
}
