//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"
)

// wsMessage is one websocket delivery: raster frames arrive binary, state
// frames as JSON text.
type wsMessage struct {
	binary bool
	data   []byte
}

// wsConn wraps the browser WebSocket: it funnels incoming messages into a
// channel and sends commands as JSON text.
type wsConn struct {
	ws       js.Value
	messages chan wsMessage
	openCh   chan struct{} // closed when connected
}

func newWSConn(url string) *wsConn {
	c := &wsConn{
		ws:       js.Global().Get("WebSocket").New(url),
		messages: make(chan wsMessage, 8),
		openCh:   make(chan struct{}),
	}

	c.ws.Set("binaryType", "arraybuffer")

	c.ws.Set("onopen", js.FuncOf(func(js.Value, []js.Value) any {
		close(c.openCh)
		return nil
	}))

	c.ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) any {
		data := args[0].Get("data")
		if data.Type() == js.TypeString {
			c.messages <- wsMessage{data: []byte(data.String())}
			return nil
		}
		jsDataToBytes(data, func(b []byte) {
			c.messages <- wsMessage{binary: true, data: b}
		})
		return nil
	}))

	c.ws.Set("onclose", js.FuncOf(func(js.Value, []js.Value) any {
		close(c.messages)
		return nil
	}))

	return c
}

func (c *wsConn) waitOpen() {
	<-c.openCh
}

// send marshals a command and ships it as a text message.
func (c *wsConn) send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	c.ws.Call("send", string(b))
	return nil
}

func jsDataToBytes(data js.Value, deliver func([]byte)) {
	// Uint8Array / Uint8ClampedArray
	if data.InstanceOf(js.Global().Get("Uint8Array")) ||
		data.InstanceOf(js.Global().Get("Uint8ClampedArray")) {

		b := make([]byte, data.Get("byteLength").Int())
		js.CopyBytesToGo(b, data)
		deliver(b)
		return
	}

	// ArrayBuffer
	if data.InstanceOf(js.Global().Get("ArrayBuffer")) {
		u8 := js.Global().Get("Uint8Array").New(data)
		b := make([]byte, u8.Get("byteLength").Int())
		js.CopyBytesToGo(b, u8)
		deliver(b)
		return
	}

	// Blob → async
	if data.InstanceOf(js.Global().Get("Blob")) {
		promise := data.Call("arrayBuffer")
		then := js.FuncOf(func(this js.Value, args []js.Value) any {
			buf := args[0]
			u8 := js.Global().Get("Uint8Array").New(buf)
			b := make([]byte, u8.Get("byteLength").Int())
			js.CopyBytesToGo(b, u8)
			deliver(b)
			return nil
		})
		promise.Call("then", then)
		return
	}

	panic("unsupported JS binary type")
}
