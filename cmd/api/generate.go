package main

// The site's form controller is the cmd/contact-wasm build plus Go's JS glue.
// Run `go generate ./cmd/api` before serving STATIC_DIR=public.

//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../../public/js/wasm_exec.js 2>/dev/null || cp \"$(go env GOROOT)/misc/wasm/wasm_exec.js\" ../../public/js/wasm_exec.js"
//go:generate env GOOS=js GOARCH=wasm go build -o ../../public/contact.wasm ../contact-wasm
