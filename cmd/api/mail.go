package main

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/campusfind/lostfound-api/internal/config"
	"github.com/campusfind/lostfound-api/internal/notify"
	"github.com/campusfind/lostfound-api/pkg/logging"
)

// buildEmailSender selects the mail relay implementation from config.
// Returning a plain nil (not a typed nil) keeps the dispatcher's
// availability check honest.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.MailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}, logger)
		if sender == nil {
			logger.Error("sendgrid selected but SENDGRID_API_KEY is empty")
			return nil
		}
		return sender
	case "ses":
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.MailFromEmail,
			FromName:  cfg.MailFromName,
		}, logger)
		if sender == nil {
			return nil
		}
		return sender
	case "stub":
		return notify.NewStubEmailSender(logger)
	case "":
		return nil
	default:
		logger.Error("unknown mail provider", "provider", cfg.MailProvider)
		return nil
	}
}

func loadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, loaders...)
}
