package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/linearmarketingsolutions/website/internal/config"
	"github.com/linearmarketingsolutions/website/internal/observability/metrics"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

func TestSetupContactMetricsExposesMetrics(t *testing.T) {
	handler, m := setupContactMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSubmission(metrics.OutcomeDelivered)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "lms_contact_submissions_total") {
		t.Fatalf("expected submissions counter to be exported")
	}
}

func TestBuildHandlerWithoutCredential(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "resend", MetricsEnabled: false}
	handler, err := buildHandler(context.Background(), cfg, logging.NewWithWriter("error", io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Email service not configured.") {
		t.Fatalf("expected not-configured message, got %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected metrics route to be disabled, got %d", rr.Code)
	}
}

func TestBuildHandlerUnknownProvider(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "fax"}
	if _, err := buildHandler(context.Background(), cfg, logging.NewWithWriter("error", io.Discard)); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
