//go:build js && wasm

// Command contact-wasm binds the contact form controller to the page DOM.
// Build with GOOS=js GOARCH=wasm and serve next to wasm_exec.js.
package main

import (
	"context"
	"fmt"
	"syscall/js"
	"time"

	"github.com/linearmarketingsolutions/website/internal/webform"
)

const submitTimeout = 30 * time.Second

func main() {
	doc := js.Global().Get("document")

	b := mount(doc, webform.NewHTTPTransport(webform.DefaultEndpoint, nil))

	// The page can call contactForm.release() before swapping the form out.
	release := js.FuncOf(func(js.Value, []js.Value) any {
		b.Release()
		return nil
	})
	js.Global().Set("contactForm", map[string]any{"release": release})

	select {}
}

// binding owns every listener the controller attached to the page.
type binding struct {
	ctrl      *webform.Controller
	listeners []listener
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func mount(doc js.Value, transport webform.Transport) *binding {
	b := &binding{}

	form := doc.Call("getElementById", "contactForm")
	if truthy(form) {
		view := newFormView(form)
		b.ctrl = webform.NewController(view, transport)
		b.listen(form, "submit", func(_ js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			// Validation and the busy state happen before the callback returns
			// so a second submit event sees a disabled button.
			sub, out := b.ctrl.Begin()
			if out != webform.OutcomePending {
				return nil
			}
			// fetch blocks; never wait on it from the event loop callback.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
				defer cancel()
				b.ctrl.Finish(ctx, sub)
			}()
			return nil
		})
	}

	anchors := doc.Call("querySelectorAll", `a[href^="#"]`)
	for i := 0; i < anchors.Length(); i++ {
		anchor := anchors.Index(i)
		b.listen(anchor, "click", func(this js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			scrollToAnchor(doc, this.Call("getAttribute", "href").String())
			return nil
		})
	}

	return b
}

func (b *binding) listen(target js.Value, event string, fn func(js.Value, []js.Value) any) {
	f := js.FuncOf(func(this js.Value, args []js.Value) (result any) {
		// A JS exception surfaces as a Go panic and would end the program,
		// taking every other listener with it.
		defer func() {
			if r := recover(); r != nil {
				js.Global().Get("console").Call("error", "contact form:", fmt.Sprint(r))
				result = nil
			}
		}()
		return fn(this, args)
	})
	target.Call("addEventListener", event, f)
	b.listeners = append(b.listeners, listener{target: target, event: event, fn: f})
}

// Release detaches all listeners and frees their callbacks.
func (b *binding) Release() {
	for _, l := range b.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
	if b.ctrl != nil {
		b.ctrl.Close()
	}
}

func scrollToAnchor(doc js.Value, href string) {
	id, ok := webform.AnchorID(href)
	if !ok {
		return
	}
	target := doc.Call("getElementById", id)
	if !truthy(target) {
		return
	}
	js.Global().Get("window").Call("scrollTo", map[string]any{
		"top":      webform.ScrollOffset(target.Get("offsetTop").Float()),
		"behavior": "smooth",
	})
}

func truthy(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}
