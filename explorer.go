package celtic

import (
	"context"
	"sync"
	"sync/atomic"
)

// Default budgets and tolerance, matching the interactive reference values.
const (
	DefaultMaxIter  = 100
	DefaultMaxOrbit = 1000
	DefaultEpsilon  = 1e-4
)

// NoPeriod is reported by LastPeriod while no point analysis result exists.
const NoPeriod = -1

// Explorer is one interactive exploration session: the current viewport,
// mode and formula, plus the latest completed raster. The raster is a
// derived artifact: any parameter change bumps the generation counter, and
// a recompute publishes only if its generation is still current, so a stale
// frame can never overwrite a newer one and consumers never observe a
// partially computed grid.
//
// All methods are safe for concurrent use. Analyses and recomputes touch
// disjoint outputs and may run at the same time.
type Explorer struct {
	mu       sync.Mutex
	view     Viewport
	mode     Mode
	formula  Formula
	maxIter  int
	maxOrbit int
	epsilon  float64
	workers  int
	gen      uint64

	raster     atomic.Pointer[Raster]
	lastPeriod atomic.Int64
}

// NewExplorer starts a session over the given viewport with the default
// formula, budgets and tolerance.
func NewExplorer(view Viewport) *Explorer {
	e := &Explorer{
		view:     view,
		maxIter:  DefaultMaxIter,
		maxOrbit: DefaultMaxOrbit,
		epsilon:  DefaultEpsilon,
	}
	e.lastPeriod.Store(NoPeriod)
	return e
}

// View returns the current viewport.
func (e *Explorer) View() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Mode returns the current iteration mode.
func (e *Explorer) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Formula returns the active formula.
func (e *Explorer) Formula() Formula {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formula
}

// SetFormula switches the active iteration formula.
func (e *Explorer) SetFormula(f Formula) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !f.Valid() || f == e.formula {
		return
	}
	e.formula = f
	e.gen++
}

// ZoomAt scales the zoom by factor, keeping the plane point under the pixel
// stationary.
func (e *Explorer) ZoomAt(px, py int, factor float64) {
	if factor <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view = e.view.ZoomAround(px, py, factor)
	e.gen++
}

// Pan shifts the viewport by a pixel delta.
func (e *Explorer) Pan(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view = e.view.Pan(dx, dy)
	e.gen++
}

// EnterJulia switches to (or, while already active, re-seeds) Julia mode
// with the parameter taken from the given pixel's mapped plane value.
func (e *Explorer) EnterJulia(px, py int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = JuliaAt(e.view, px, py)
	e.gen++
}

// LeaveJulia returns to Mandelbrot-style mode.
func (e *Explorer) LeaveJulia() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mode.Julia {
		return
	}
	e.mode = Mode{}
	e.gen++
}

// SetEpsilon tunes the analyzer's cycle tolerance. It does not invalidate
// the raster; only point analyses are affected.
func (e *Explorer) SetEpsilon(eps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epsilon = eps
}

// SetBudgets sets the raster and orbit iteration budgets. Non-positive
// values leave the corresponding budget unchanged.
func (e *Explorer) SetBudgets(maxIter, maxOrbit int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if maxIter > 0 && maxIter != e.maxIter {
		e.maxIter = maxIter
		e.gen++
	}
	if maxOrbit > 0 {
		e.maxOrbit = maxOrbit
	}
}

// SetWorkers bounds the raster worker pool (<= 0 means GOMAXPROCS).
func (e *Explorer) SetWorkers(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workers = n
}

// Recompute renders a raster from the current parameters and publishes it.
// If the parameters change while the compute is in flight the result is
// discarded and (nil, nil) is returned: last write wins, superseded frames
// are never published. A cancelled context likewise publishes nothing.
func (e *Explorer) Recompute(ctx context.Context) (*Raster, error) {
	e.mu.Lock()
	view, mode, f := e.view, e.mode, e.formula
	maxIter, workers := e.maxIter, e.workers
	gen := e.gen
	e.mu.Unlock()

	ras, err := ComputeRaster(ctx, view, mode, f, maxIter, workers)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return nil, nil
	}
	e.raster.Store(ras)
	return ras, nil
}

// Raster returns the latest published raster, or nil before the first
// completed recompute.
func (e *Explorer) Raster() *Raster {
	return e.raster.Load()
}

// AnalyzeAt runs an orbit analysis for a query pixel. Pixels outside the
// raster bounds report no result (ok false), distinct from any period value,
// and clear the last-period signal.
func (e *Explorer) AnalyzeAt(px, py int) (Analysis, bool) {
	e.mu.Lock()
	view, mode, f := e.view, e.mode, e.formula
	maxOrbit, eps := e.maxOrbit, e.epsilon
	e.mu.Unlock()

	if !view.Contains(px, py) {
		e.lastPeriod.Store(NoPeriod)
		return Analysis{}, false
	}

	a := Analyze(view, mode, f, px, py, maxOrbit, eps)
	e.lastPeriod.Store(int64(a.Period))
	return a, true
}

// LastPeriod exposes the most recent analysis period for the audio and
// logging collaborators, or NoPeriod when there is none.
func (e *Explorer) LastPeriod() int {
	return int(e.lastPeriod.Load())
}

// JuliaMarker maps the active Julia parameter back to pixel space for
// overlay drawing. ok is false outside Julia mode.
func (e *Explorer) JuliaMarker() (x, y float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mode.Julia {
		return 0, 0, false
	}
	x, y = e.view.ToPixel(e.mode.JuliaC)
	return x, y, true
}

// ToneFrequency maps an orbit period to the tone pitch a sound layer should
// play: 220 + (period mod 40) * 10 Hz. The engine itself synthesizes
// nothing.
func ToneFrequency(period int) float64 {
	if period < 0 {
		period = 0
	}
	return 220 + float64(period%40)*10
}
