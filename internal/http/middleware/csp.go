package middleware

import (
	"net/http"

	"github.com/crewjam/csp"
)

// ContentSecurityPolicy sets a Content-Security-Policy header on site pages.
// The form controller ships as WebAssembly, so script-src allows
// 'wasm-unsafe-eval' in addition to same-origin scripts.
func ContentSecurityPolicy(extraScriptSrc ...string) func(http.Handler) http.Handler {
	value := csp.Header{
		DefaultSrc: []string{"'self'"},
		ScriptSrc:  append([]string{"'self'", "'wasm-unsafe-eval'"}, extraScriptSrc...),
	}.String()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", value)
			next.ServeHTTP(w, r)
		})
	}
}
