package email

import (
	"fmt"

	"ayuteng_backend/internal/config"
)

// NewProvider builds the provider named by configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	renderer := NewTemplateManager()

	switch cfg.Email.Provider {
	case "smtp":
		return NewSMTPProvider(&SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
			FromName: cfg.Email.FromName,
		}, renderer), nil
	case "brevo":
		return NewBrevoProvider(&BrevoConfig{
			APIKey:   cfg.Email.BrevoAPIKey,
			From:     cfg.Email.FromEmail,
			FromName: cfg.Email.FromName,
		}, renderer), nil
	case "mock", "":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Email.Provider)
	}
}
