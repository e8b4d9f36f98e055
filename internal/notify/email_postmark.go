package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/linearmarketingsolutions/website/pkg/logging"
	"github.com/mrz1836/postmark"
)

// PostmarkSender sends emails through Postmark's transactional API.
type PostmarkSender struct {
	client    *postmark.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// PostmarkConfig holds configuration for Postmark.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	BaseURL      string // optional API endpoint override
	FromEmail    string
	FromName     string
}

// NewPostmarkSender returns nil when the server token is empty. The account
// token is only needed for administrative calls and may be left blank.
func NewPostmarkSender(cfg PostmarkConfig, logger *logging.Logger) *PostmarkSender {
	if strings.TrimSpace(cfg.ServerToken) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		client.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &PostmarkSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send delivers msg through Postmark. A non-zero ErrorCode in the response is
// treated as a delivery failure.
func (s *PostmarkSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: postmark client not configured")
	}

	from := msg.From
	if from == "" {
		from = formatAddress(s.fromName, s.fromEmail)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       strings.Join(msg.To, ","),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
		Tag:      "contact-form",
	})
	if err != nil {
		s.logger.Error("postmark send failed", "error", err, "to", msg.To)
		return fmt.Errorf("%w: postmark: %v", ErrDeliveryFailed, err)
	}
	if resp.ErrorCode > 0 {
		s.logger.Error("postmark rejected message", "code", resp.ErrorCode, "message", resp.Message, "to", msg.To)
		return fmt.Errorf("%w: postmark error %d", ErrDeliveryFailed, resp.ErrorCode)
	}

	s.logger.Info("email sent via postmark", "to", msg.To, "subject", msg.Subject, "message_id", resp.MessageID)
	return nil
}

var _ EmailSender = (*PostmarkSender)(nil)
