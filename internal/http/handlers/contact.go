package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/notify"
	"github.com/linearmarketingsolutions/website/internal/observability/metrics"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

var contactTracer = otel.Tracer("lms.internal.http.handlers.contact")

// maxContactBody caps the submission payload at 1MB.
const maxContactBody = 1 << 20

// ContactHandlerConfig wires the contact endpoint. Sender is nil when no
// provider credential was configured at startup.
type ContactHandlerConfig struct {
	Sender      notify.EmailSender
	Logger      *logging.Logger
	Metrics     *metrics.ContactMetrics
	SendTimeout time.Duration // 0 inherits the request deadline
}

// ContactHandler validates contact form submissions and relays them by email.
type ContactHandler struct {
	sender      notify.EmailSender
	logger      *logging.Logger
	metrics     *metrics.ContactMetrics
	sendTimeout time.Duration
}

// NewContactHandler creates the contact endpoint handler.
func NewContactHandler(cfg ContactHandlerConfig) *ContactHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &ContactHandler{
		sender:      cfg.Sender,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		sendTimeout: cfg.SendTimeout,
	}
}

// ServeHTTP handles OPTIONS and POST /api/contact.
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithRequest(r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		writeContactJSON(w, http.StatusMethodNotAllowed, contact.Failed(contact.MsgMethodNotAllowed))
		return
	}

	if h.sender == nil {
		logger.Error("email provider credential is not configured")
		h.metrics.ObserveSubmission(metrics.OutcomeNotConfigured)
		writeContactJSON(w, http.StatusInternalServerError, contact.Failed(contact.MsgNotConfigured))
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("contact handler panic", "panic", fmt.Sprint(rec))
			h.metrics.ObserveSubmission(metrics.OutcomeError)
			writeContactJSON(w, http.StatusInternalServerError, contact.Failed(contact.MsgUnexpected))
		}
	}()

	var sub contact.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&sub); err != nil {
		logger.Error("failed to decode contact submission", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeError)
		writeContactJSON(w, http.StatusInternalServerError, contact.Failed(contact.MsgUnexpected))
		return
	}
	sub.Normalize()

	if err := sub.Validate(); err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeContactJSON(w, http.StatusBadRequest, contact.Failed(contact.UserMessage(err)))
		return
	}

	if err := h.deliver(r.Context(), sub); err != nil {
		logger.Error("failed to deliver contact email", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeSendFailed)
		writeContactJSON(w, http.StatusInternalServerError, contact.Failed(contact.MsgSendFailed))
		return
	}

	logger.Info("contact email sent")
	h.metrics.ObserveSubmission(metrics.OutcomeDelivered)
	writeContactJSON(w, http.StatusOK, contact.Succeeded(contact.MsgDelivered))
}

func (h *ContactHandler) deliver(ctx context.Context, sub contact.Submission) error {
	if h.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.sendTimeout)
		defer cancel()
	}

	ctx, span := contactTracer.Start(ctx, "contact.deliver", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	email := contact.BuildEmail(sub)
	span.SetAttributes(
		attribute.String("lms.contact.to", email.To[0]),
		attribute.Int("lms.contact.message_length", len(sub.Message)),
	)

	start := time.Now()
	err := h.sender.Send(ctx, notify.EmailMessage{
		From:    email.From,
		To:      email.To,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	h.metrics.ObserveDelivery(err == nil, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("contact: send timed out after %s: %w", h.sendTimeout, err)
		}
		return fmt.Errorf("contact: send: %w", err)
	}
	return nil
}

func writeContactJSON(w http.ResponseWriter, status int, resp contact.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
