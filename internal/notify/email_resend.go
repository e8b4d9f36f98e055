package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/linearmarketingsolutions/website/pkg/logging"
	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey    string
	BaseURL   string // optional API endpoint override
	FromEmail string
	FromName  string
}

// NewResendSender creates a Resend email sender. It returns nil when the API
// key is empty.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		if u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/"); err == nil {
			client.BaseURL = u
		} else {
			logger.Warn("ignoring invalid resend base url", "error", err)
		}
	}
	return &ResendSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: resend client not configured")
	}

	from := msg.From
	if from == "" {
		from = formatAddress(s.fromName, s.fromEmail)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend send failed", "error", err, "to", msg.To)
		return fmt.Errorf("%w: resend: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("email sent via resend", "to", msg.To, "subject", msg.Subject, "message_id", sent.Id)
	return nil
}

var _ EmailSender = (*ResendSender)(nil)
