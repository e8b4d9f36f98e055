//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/webform"
)

// formView adapts the #contactForm markup to webform.View.
type formView struct {
	form    js.Value
	button  js.Value
	label   js.Value
	loader  js.Value
	message js.Value
}

func newFormView(form js.Value) *formView {
	v := &formView{
		form:    form,
		button:  form.Call("querySelector", ".submit-button"),
		message: form.Call("querySelector", ".form-message"),
	}
	if truthy(v.button) {
		v.label = v.button.Call("querySelector", ".button-text")
		v.loader = v.button.Call("querySelector", ".button-loader")
	}
	return v
}

func (v *formView) field(name string) string {
	el := v.form.Get("elements").Call("namedItem", name)
	if !truthy(el) {
		return ""
	}
	return el.Get("value").String()
}

func (v *formView) Values() contact.Submission {
	return contact.Submission{
		Name:     v.field("name"),
		Email:    v.field("email"),
		Company:  v.field("company"),
		Position: v.field("position"),
		Message:  v.field("message"),
	}
}

func (v *formView) SetBusy(busy bool) {
	if truthy(v.button) {
		v.button.Set("disabled", busy)
	}
	if busy {
		setDisplay(v.label, "none")
		setDisplay(v.loader, "inline")
		return
	}
	setDisplay(v.label, "inline")
	setDisplay(v.loader, "none")
}

func (v *formView) ShowMessage(text string, kind webform.MessageKind) {
	if !truthy(v.message) {
		return
	}
	v.message.Set("textContent", text)
	v.message.Set("className", kind.Class())
	setDisplay(v.message, "block")
}

func (v *formView) HideMessage() {
	setDisplay(v.message, "none")
}

func (v *formView) Reset() {
	v.form.Call("reset")
}

func setDisplay(el js.Value, display string) {
	if truthy(el) {
		el.Get("style").Set("display", display)
	}
}
