// Package contact holds the contact form rules shared by the browser
// controller and the submission endpoint: the submission model, field
// validation, the visitor-facing messages and the outbound email rendering.
//
// The package has no third-party imports so it can be compiled into the
// js/wasm form controller as well as the server.
package contact
