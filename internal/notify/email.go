package notify

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

var (
	// ErrDeliveryFailed wraps every failure reported by an email provider.
	ErrDeliveryFailed = errors.New("notify: delivery failed")

	// ErrUnknownProvider is returned by NewSender for an unsupported EMAIL_PROVIDER.
	ErrUnknownProvider = errors.New("notify: unknown email provider")
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (Resend, SendGrid, SES, Postmark) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From    string // "Display Name <addr>"; empty uses the sender's configured identity
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string // Optional plain text alternative
}

// Provider names accepted by NewSender.
const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderPostmark = "postmark"
	ProviderStub     = "stub"
)

// SenderConfig selects and configures the outbound email provider.
type SenderConfig struct {
	Provider             string
	ResendAPIKey         string
	ResendBaseURL        string
	SendGridAPIKey       string
	SendGridHost         string
	PostmarkServerToken  string
	PostmarkAccountToken string
	PostmarkBaseURL      string
	SESClient            *sesv2.Client
	FromEmail            string
	FromName             string
}

// NewSender builds the sender for cfg.Provider. It returns a nil sender and a
// nil error when the provider's credential is absent so callers can report the
// service as not configured.
func NewSender(cfg SenderConfig, logger *logging.Logger) (EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderResend:
		if s := NewResendSender(ResendConfig{
			APIKey:    cfg.ResendAPIKey,
			BaseURL:   cfg.ResendBaseURL,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s, nil
		}
	case ProviderSendGrid:
		if s := NewSendGridSender(SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			Host:      cfg.SendGridHost,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s, nil
		}
	case ProviderPostmark:
		if s := NewPostmarkSender(PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			BaseURL:      cfg.PostmarkBaseURL,
			FromEmail:    cfg.FromEmail,
			FromName:     cfg.FromName,
		}, logger); s != nil {
			return s, nil
		}
	case ProviderSES:
		if s := NewSESSender(cfg.SESClient, SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s, nil
		}
	case ProviderStub:
		return NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	return nil, nil
}

// formatAddress renders "Name <addr>", or the bare address when name is empty.
func formatAddress(name, addr string) string {
	if strings.TrimSpace(name) == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

// splitAddress parses "Name <addr>" into its parts. Unparseable input is
// returned as the address with no display name.
func splitAddress(raw string) (name, addr string) {
	parsed, err := mail.ParseAddress(raw)
	if err != nil {
		return "", strings.TrimSpace(raw)
	}
	return parsed.Name, parsed.Address
}

// StubEmailSender is a no-op sender for testing or when email is disabled.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject)
	return nil
}
