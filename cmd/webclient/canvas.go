//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"syscall/js"

	celtic "github.com/marben/celtic_explorer"
)

func initCanvas(id string, width, height int) js.Value {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", id)
	canvas.Set("width", width)
	canvas.Set("height", height)
	return canvas
}

// drawRasterFrame decodes a PNG raster frame and puts it on the fractal
// canvas.
func drawRasterFrame(canvas js.Value, pngData []byte) error {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("decode raster frame: %w", err)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	width := rgba.Rect.Dx()
	height := rgba.Rect.Dy()

	// Copy the Go pixel buffer into a JS TypedArray and put it on the canvas.
	jsData := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(jsData, rgba.Pix)
	imageData := js.Global().Get("ImageData").New(jsData, width, height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Call("putImageData", imageData, 0, 0)
	return nil
}

// drawOverlay repaints the overlay canvas: the orbit polyline, the Julia
// marker and the cursor marker.
func drawOverlay(canvas js.Value, state celtic.StateFrame, mouseX, mouseY int) {
	ctx := canvas.Call("getContext", "2d")
	ctx.Call("clearRect", 0, 0, canvas.Get("width"), canvas.Get("height"))

	// Orbit path
	if len(state.Orbit) > 1 {
		ctx.Set("strokeStyle", "#00c000")
		ctx.Set("lineWidth", 1)
		ctx.Call("beginPath")
		ctx.Call("moveTo", state.Orbit[0][0], state.Orbit[0][1])
		for _, p := range state.Orbit[1:] {
			ctx.Call("lineTo", p[0], p[1])
		}
		ctx.Call("stroke")
	}

	// Julia parameter marker
	if state.Julia {
		drawMarker(ctx, state.JuliaX, state.JuliaY, "#4040ff")
	}

	// Cursor marker
	drawMarker(ctx, float64(mouseX), float64(mouseY), "#ff4040")

	if state.Period != celtic.NoPeriod {
		ctx.Set("fillStyle", "#ffffff")
		ctx.Set("font", "13px monospace")
		label := fmt.Sprintf("period %d (%s)  %.0f Hz", state.Period, state.Outcome, state.Tone)
		ctx.Call("fillText", label, 8, 16)
	}
}

func drawMarker(ctx js.Value, x, y float64, color string) {
	ctx.Set("fillStyle", color)
	ctx.Call("beginPath")
	ctx.Call("arc", x, y, 8, 0, 2*3.141592653589793)
	ctx.Call("fill")
}

// playTone beeps at the period-derived pitch via WebAudio.
func playTone(audioCtx js.Value, freq float64) {
	if audioCtx.IsUndefined() || audioCtx.IsNull() {
		return
	}
	osc := audioCtx.Call("createOscillator")
	gain := audioCtx.Call("createGain")
	gain.Get("gain").Set("value", 0.1)
	osc.Get("frequency").Set("value", freq)
	osc.Call("connect", gain)
	gain.Call("connect", audioCtx.Get("destination"))

	now := audioCtx.Get("currentTime").Float()
	osc.Call("start", now)
	osc.Call("stop", now+0.08)
}
