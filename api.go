package celtic

// Wire types shared by cmd/server and its clients. A session speaks JSON
// text messages both ways plus binary messages carrying PNG-encoded raster
// frames from server to client.

// Command op codes.
const (
	OpZoom    = "zoom"    // scale zoom by Factor around pixel (X, Y)
	OpPan     = "pan"     // shift the view by (DX, DY) pixels
	OpFormula = "formula" // switch to formula index Formula
	OpJulia   = "julia"   // enter/leave Julia mode; seed from (X, Y) when On
	OpProbe   = "probe"   // analyze the orbit under pixel (X, Y)
	OpEpsilon = "epsilon" // tune the analyzer tolerance
)

// Command is one client request on an explorer session.
type Command struct {
	Op      string  `json:"op"`
	X       int     `json:"x,omitempty"`
	Y       int     `json:"y,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
	Formula int     `json:"formula,omitempty"`
	On      bool    `json:"on,omitempty"`
	Epsilon float64 `json:"epsilon,omitempty"`
}

// StateFrame reports the session state after a command: the active formula
// and mode, the latest probe result mapped for overlay drawing, and the tone
// pitch derived from the period. Period is NoPeriod when the probe point was
// outside the raster.
type StateFrame struct {
	Zoom    float64 `json:"zoom"`
	Formula int     `json:"formula"`
	Julia   bool    `json:"julia"`
	JuliaX  float64 `json:"juliaX,omitempty"`
	JuliaY  float64 `json:"juliaY,omitempty"`

	Period  int     `json:"period"`
	Outcome string  `json:"outcome,omitempty"`
	Tone    float64 `json:"tone,omitempty"`

	// Orbit vertices in pixel coordinates, for the overlay polyline.
	Orbit [][2]float64 `json:"orbit,omitempty"`
}

// Snapshot assembles a state frame from the current explorer state and an
// optional probe result (pass ok == false after an out-of-bounds probe).
func Snapshot(e *Explorer, a Analysis, ok bool) StateFrame {
	view := e.View()
	mode := e.Mode()

	f := StateFrame{
		Zoom:    view.Zoom,
		Formula: int(e.Formula()),
		Julia:   mode.Julia,
		Period:  NoPeriod,
	}
	if x, y, marked := e.JuliaMarker(); marked {
		f.JuliaX, f.JuliaY = x, y
	}
	if !ok {
		return f
	}

	f.Period = a.Period
	f.Outcome = a.Outcome.String()
	f.Tone = ToneFrequency(a.Period)
	f.Orbit = make([][2]float64, len(a.Orbit))
	for i, z := range a.Orbit {
		x, y := view.ToPixel(z)
		f.Orbit[i] = [2]float64{x, y}
	}
	return f
}
