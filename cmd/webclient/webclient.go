//go:build js && wasm

// webclient is the WASM browser client for the Celtic explorer server: it
// draws the raster frames the server pushes, overlays the orbit of the point
// under the cursor, and turns mouse/keyboard input into session commands.
package main

import (
	"encoding/json"
	"log"
	"sync"
	"syscall/js"

	celtic "github.com/marben/celtic_explorer"
)

const zoomFactor = 1.2

type client struct {
	conn    *wsConn
	fractal js.Value // base canvas, raster frames
	overlay js.Value // overlay canvas, orbit and markers
	audio   js.Value

	mu     sync.Mutex
	state  celtic.StateFrame
	mouseX int
	mouseY int
	julia  bool
	tone   bool // left button held: play the period tone
}

func main() {
	log.Println("webclient starting")

	loc := js.Global().Get("window").Get("location")
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	url := proto + "://" + loc.Get("host").String() + "/ws"

	c := &client{conn: newWSConn(url)}
	c.conn.waitOpen()
	log.Printf("connected to %s", url)

	c.bindInput()

	for msg := range c.conn.messages {
		if msg.binary {
			c.onRaster(msg.data)
			continue
		}
		c.onState(msg.data)
	}

	log.Println("connection closed")
}

// onRaster draws a pushed raster frame, sizing the canvases on first use.
func (c *client) onRaster(data []byte) {
	if c.fractal.IsUndefined() {
		// Dimensions come from the decoded frame itself.
		c.fractal = js.Global().Get("document").Call("getElementById", "fractal")
		c.overlay = js.Global().Get("document").Call("getElementById", "overlay")
	}
	if err := drawRasterFrame(c.fractal, data); err != nil {
		log.Printf("raster frame: %v", err)
		return
	}
	c.overlay.Set("width", c.fractal.Get("width"))
	c.overlay.Set("height", c.fractal.Get("height"))
	c.redrawOverlay()
}

func (c *client) onState(data []byte) {
	var state celtic.StateFrame
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("state frame: %v", err)
		return
	}

	c.mu.Lock()
	c.state = state
	playNow := c.tone && state.Period != celtic.NoPeriod
	c.mu.Unlock()

	if playNow {
		playTone(c.audio, state.Tone)
	}
	c.redrawOverlay()
}

func (c *client) redrawOverlay() {
	if c.overlay.IsUndefined() {
		return
	}
	c.mu.Lock()
	state, mx, my := c.state, c.mouseX, c.mouseY
	c.mu.Unlock()
	drawOverlay(c.overlay, state, mx, my)
}

func (c *client) send(cmd celtic.Command) {
	if err := c.conn.send(cmd); err != nil {
		log.Printf("send %s: %v", cmd.Op, err)
	}
}

// bindInput wires the browser events to session commands: wheel zooms
// around the cursor, alt-drag pans, keys 1..4 switch formulas, holding j
// follows the cursor with the Julia parameter, and every mouse move probes
// the orbit under the cursor.
func (c *client) bindInput() {
	doc := js.Global().Get("document")
	target := doc.Call("getElementById", "overlay")

	dragging := false

	target.Call("addEventListener", "wheel", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		ev.Call("preventDefault")

		factor := zoomFactor
		if ev.Get("deltaY").Float() > 0 {
			factor = 1 / zoomFactor
		}
		c.send(celtic.Command{
			Op: celtic.OpZoom,
			X:  ev.Get("offsetX").Int(), Y: ev.Get("offsetY").Int(),
			Factor: factor,
		})
		return nil
	}))

	target.Call("addEventListener", "mousedown", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		if ev.Get("button").Int() != 0 {
			return nil
		}
		if ev.Get("altKey").Bool() {
			dragging = true
			return nil
		}

		// Plain left button: sound the current period.
		c.mu.Lock()
		c.tone = true
		period := c.state.Period
		tone := c.state.Tone
		c.mu.Unlock()

		if c.audio.IsUndefined() {
			// AudioContext creation must happen inside a user gesture.
			c.audio = js.Global().Get("AudioContext").New()
		}
		if period != celtic.NoPeriod {
			playTone(c.audio, tone)
		}
		return nil
	}))

	target.Call("addEventListener", "mouseup", js.FuncOf(func(this js.Value, args []js.Value) any {
		dragging = false
		c.mu.Lock()
		c.tone = false
		c.mu.Unlock()
		return nil
	}))

	target.Call("addEventListener", "mousemove", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		x := ev.Get("offsetX").Int()
		y := ev.Get("offsetY").Int()

		c.mu.Lock()
		c.mouseX, c.mouseY = x, y
		julia := c.julia
		c.mu.Unlock()

		if dragging && ev.Get("altKey").Bool() {
			// Dragging moves the plane with the cursor.
			c.send(celtic.Command{
				Op: celtic.OpPan,
				DX: -ev.Get("movementX").Float(),
				DY: -ev.Get("movementY").Float(),
			})
			return nil
		}

		if julia {
			// While j is held the Julia parameter follows the cursor.
			c.send(celtic.Command{Op: celtic.OpJulia, On: true, X: x, Y: y})
		}
		c.send(celtic.Command{Op: celtic.OpProbe, X: x, Y: y})
		return nil
	}))

	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		key := args[0].Get("key").String()
		switch key {
		case "1", "2", "3", "4":
			c.send(celtic.Command{Op: celtic.OpFormula, Formula: int(key[0] - '1')})
		case "j":
			c.mu.Lock()
			c.julia = true
			x, y := c.mouseX, c.mouseY
			c.mu.Unlock()
			c.send(celtic.Command{Op: celtic.OpJulia, On: true, X: x, Y: y})
		}
		return nil
	}))

	doc.Call("addEventListener", "keyup", js.FuncOf(func(this js.Value, args []js.Value) any {
		if args[0].Get("key").String() == "j" {
			c.mu.Lock()
			c.julia = false
			c.mu.Unlock()
			c.send(celtic.Command{Op: celtic.OpJulia, On: false})
		}
		return nil
	}))
}
