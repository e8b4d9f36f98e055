package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/notify"
	"github.com/linearmarketingsolutions/website/internal/observability/metrics"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

type recordingSender struct {
	messages []notify.EmailMessage
	err      error
}

func (s *recordingSender) Send(_ context.Context, msg notify.EmailMessage) error {
	s.messages = append(s.messages, msg)
	return s.err
}

type panicSender struct{}

func (panicSender) Send(context.Context, notify.EmailMessage) error {
	panic("provider client exploded")
}

type blockingSender struct{}

func (blockingSender) Send(ctx context.Context, _ notify.EmailMessage) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestContactHandler(sender notify.EmailSender) *ContactHandler {
	return NewContactHandler(ContactHandlerConfig{
		Sender:  sender,
		Logger:  logging.NewWithWriter("error", io.Discard),
		Metrics: metrics.NewContactMetrics(prometheus.NewRegistry()),
	})
}

func contactBody(t *testing.T, sub contact.Submission) io.Reader {
	t.Helper()
	body, err := json.Marshal(sub)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func wellFormed() contact.Submission {
	return contact.Submission{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Company:  "Acme",
		Position: "CMO",
		Message:  "Hello\nWorld",
	}
}

func serveContact(h http.Handler, method string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/contact", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeContactResponse(t *testing.T, rec *httptest.ResponseRecorder) contact.Response {
	t.Helper()
	var resp contact.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestContactHandler_Delivers(t *testing.T) {
	sender := &recordingSender{}
	rec := serveContact(newTestContactHandler(sender), http.MethodPost, contactBody(t, wellFormed()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeContactResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, contact.MsgDelivered, resp.Message)
	assert.Empty(t, resp.Error)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, []string{"info@linearmarketingsolutions.com"}, msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.Equal(t, contact.Sender, msg.From)
	assert.Equal(t, "New Contact Form Submission from Jane Doe", msg.Subject)
	assert.Contains(t, msg.HTML, "Hello<br>World")
}

func TestContactHandler_TrimsBeforeDelivery(t *testing.T) {
	sender := &recordingSender{}
	sub := wellFormed()
	sub.Email = "  jane@example.com "
	sub.Name = " Jane Doe "

	rec := serveContact(newTestContactHandler(sender), http.MethodPost, contactBody(t, sub))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "jane@example.com", sender.messages[0].ReplyTo)
	assert.Equal(t, "New Contact Form Submission from Jane Doe", sender.messages[0].Subject)
}

func TestContactHandler_MissingFields(t *testing.T) {
	blank := []func(*contact.Submission){
		func(s *contact.Submission) { s.Name = "" },
		func(s *contact.Submission) { s.Email = " " },
		func(s *contact.Submission) { s.Company = "" },
		func(s *contact.Submission) { s.Position = "\t" },
		func(s *contact.Submission) { s.Message = "" },
	}
	for _, blankOut := range blank {
		sender := &recordingSender{}
		sub := wellFormed()
		blankOut(&sub)

		rec := serveContact(newTestContactHandler(sender), http.MethodPost, contactBody(t, sub))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeContactResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Please fill in all required fields.", resp.Error)
		assert.Empty(t, sender.messages, "sender must not be called for invalid input")
	}
}

func TestContactHandler_MissingBodyFields(t *testing.T) {
	sender := &recordingSender{}
	rec := serveContact(newTestContactHandler(sender), http.MethodPost, strings.NewReader(`{"name":"Jane"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contact.MsgMissingFields, decodeContactResponse(t, rec).Error)
	assert.Empty(t, sender.messages)
}

func TestContactHandler_InvalidEmail(t *testing.T) {
	for _, addr := range []string{"not-an-email", "a@b", "a b@c.com"} {
		sender := &recordingSender{}
		sub := wellFormed()
		sub.Email = addr

		rec := serveContact(newTestContactHandler(sender), http.MethodPost, contactBody(t, sub))

		assert.Equal(t, http.StatusBadRequest, rec.Code, addr)
		assert.Equal(t, "Please enter a valid email address.", decodeContactResponse(t, rec).Error)
		assert.Empty(t, sender.messages)
	}
}

func TestContactHandler_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		sender := &recordingSender{}
		rec := serveContact(newTestContactHandler(sender), method, nil)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		resp := decodeContactResponse(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Method not allowed", resp.Error)
		assert.Empty(t, sender.messages)
	}
}

func TestContactHandler_Preflight(t *testing.T) {
	for _, sender := range []notify.EmailSender{nil, &recordingSender{}} {
		rec := serveContact(newTestContactHandler(sender), http.MethodOptions, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	}
}

func TestContactHandler_NotConfigured(t *testing.T) {
	rec := serveContact(newTestContactHandler(nil), http.MethodPost, contactBody(t, wellFormed()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeContactResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email service not configured.", resp.Error)
}

func TestContactHandler_NotConfiguredBeforeValidation(t *testing.T) {
	rec := serveContact(newTestContactHandler(nil), http.MethodPost, strings.NewReader(`{}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, contact.MsgNotConfigured, decodeContactResponse(t, rec).Error)
}

func TestContactHandler_SendErrorIsGeneric(t *testing.T) {
	sender := &recordingSender{err: errors.New("resend: 403 domain not verified, key=re_secret")}
	rec := serveContact(newTestContactHandler(sender), http.MethodPost, contactBody(t, wellFormed()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "re_secret")
	assert.NotContains(t, body, "domain not verified")

	var resp contact.Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to send message. Please try again or email us directly.", resp.Error)
}

func TestContactHandler_PanicIsGeneric(t *testing.T) {
	rec := serveContact(newTestContactHandler(panicSender{}), http.MethodPost, contactBody(t, wellFormed()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeContactResponse(t, rec)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", resp.Error)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestContactHandler_MalformedJSON(t *testing.T) {
	sender := &recordingSender{}
	rec := serveContact(newTestContactHandler(sender), http.MethodPost, strings.NewReader(`{"name": 42`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, contact.MsgUnexpected, decodeContactResponse(t, rec).Error)
	assert.Empty(t, sender.messages)
}

func TestContactHandler_SendTimeout(t *testing.T) {
	h := NewContactHandler(ContactHandlerConfig{
		Sender:      blockingSender{},
		Logger:      logging.NewWithWriter("error", io.Discard),
		SendTimeout: 20 * time.Millisecond,
	})

	rec := serveContact(h, http.MethodPost, contactBody(t, wellFormed()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, contact.MsgSendFailed, decodeContactResponse(t, rec).Error)
}

func TestContactHandler_NilMetricsAndLogger(t *testing.T) {
	h := NewContactHandler(ContactHandlerConfig{Sender: &recordingSender{}})
	rec := serveContact(h, http.MethodPost, contactBody(t, wellFormed()))
	assert.Equal(t, http.StatusOK, rec.Code)
}
