package mainconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/linearmarketingsolutions/website/internal/config"
	"github.com/linearmarketingsolutions/website/internal/contact"
	"github.com/linearmarketingsolutions/website/internal/notify"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

// LoadAWSConfig centralizes AWS SDK initialization so both binaries share the
// same LocalStack/production wiring.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, loaders...)
}

// NewSESClient builds an SES v2 client, honouring AWS_ENDPOINT_OVERRIDE.
func NewSESClient(awsCfg aws.Config, cfg *appconfig.Config) *sesv2.Client {
	return sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// NewEmailSender builds the configured provider once at startup. A nil sender
// with a nil error means the provider credential is absent; the contact
// endpoint reports that as a configuration error on every POST.
func NewEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	senderCfg := notify.SenderConfig{
		Provider:             cfg.EmailProvider,
		ResendAPIKey:         cfg.ResendAPIKey,
		ResendBaseURL:        cfg.ResendBaseURL,
		SendGridAPIKey:       cfg.SendGridAPIKey,
		SendGridHost:         cfg.SendGridHost,
		PostmarkServerToken:  cfg.PostmarkServerToken,
		PostmarkAccountToken: cfg.PostmarkAccountToken,
		PostmarkBaseURL:      cfg.PostmarkBaseURL,
		FromEmail:            contact.SenderEmail,
		FromName:             contact.SenderName,
	}
	if cfg.EmailProvider == notify.ProviderSES {
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		senderCfg.SESClient = NewSESClient(awsCfg, cfg)
	}

	sender, err := notify.NewSender(senderCfg, logger)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		logger.Warn("email provider credential missing; contact submissions will fail", "provider", cfg.EmailProvider)
	}
	return sender, nil
}
