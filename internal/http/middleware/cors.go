package middleware

import (
	"net/http"
)

// Header values advertised by the contact endpoint. The endpoint is called from
// the marketing site and from any embed, so the policy is open.
const (
	corsAllowOrigin      = "*"
	corsAllowCredentials = "true"
	corsAllowMethods     = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders     = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// ContactCORS sets the contact endpoint's CORS headers on every response,
// before the wrapped handler runs. Preflight handling is left to the handler.
func ContactCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetContactCORSHeaders(w.Header())
		next.ServeHTTP(w, r)
	})
}

// SetContactCORSHeaders writes the contact CORS header set into h.
func SetContactCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Credentials", corsAllowCredentials)
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}
