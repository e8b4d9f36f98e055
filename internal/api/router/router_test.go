package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/http/handlers"
	"github.com/linearmarketingsolutions/website/internal/notify"
	"github.com/linearmarketingsolutions/website/internal/observability/metrics"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

type fakeSender struct {
	sent []notify.EmailMessage
}

func (f *fakeSender) Send(_ context.Context, msg notify.EmailMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func newTestRouter(t *testing.T, sender notify.EmailSender) http.Handler {
	t.Helper()

	logger := logging.NewWithWriter("error", io.Discard)
	reg := prometheus.NewRegistry()
	contactMetrics := metrics.NewContactMetrics(reg)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(`<form id="contactForm"></form>`), 0o644))

	return New(&Config{
		Logger: logger,
		ContactHandler: handlers.NewContactHandler(handlers.ContactHandlerConfig{
			Sender:  sender,
			Logger:  logger,
			Metrics: contactMetrics,
		}),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StaticDir:      staticDir,
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeSender{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestContactRouteDelivers(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRouter(t, sender)

	body := `{"name":"Jane","email":"jane@example.com","company":"Acme","position":"CMO","message":"Hi"}`
	req := httptest.NewRequest(http.MethodPost, ContactPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp contact.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].ReplyTo)
}

func TestContactRoutePreflightWithoutCredential(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, ContactPath, nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,OPTIONS,PATCH,DELETE,POST,PUT", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestContactRouteMethodNotAllowedCarriesCORS(t *testing.T) {
	r := newTestRouter(t, &fakeSender{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ContactPath, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposeSubmissions(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, ContactPath, strings.NewReader(`{}`)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lms_contact_submissions_total{outcome="not_configured"} 1`)
}

func TestStaticSiteServedWithCSP(t *testing.T) {
	r := newTestRouter(t, &fakeSender{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "contactForm")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'wasm-unsafe-eval'")
}
