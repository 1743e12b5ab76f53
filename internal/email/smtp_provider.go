package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPProvider implements Provider over SMTP.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer *TemplateManager
}

// NewSMTPProvider creates a new SMTP provider.
func NewSMTPProvider(config *SMTPConfig, renderer *TemplateManager) *SMTPProvider {
	return &SMTPProvider{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: renderer,
	}
}

// Send sends an email message.
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.From
	}
	fromName := email.FromName
	if fromName == "" {
		fromName = p.config.FromName
	}
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerification sends the email verification link.
func (p *SMTPProvider) SendVerification(to, name, verifyURL string) error {
	htmlBody, err := p.renderer.Render("verification", TemplateData{
		"Name":      name,
		"VerifyURL": verifyURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       []string{to},
		ToName:   name,
		Subject:  "Verify your email address",
		HTMLBody: htmlBody,
	})
}

// SendSubmissionConfirmation sends the post-submission confirmation.
func (p *SMTPProvider) SendSubmissionConfirmation(to, name, referenceNumber string) error {
	htmlBody, err := p.renderer.Render("submission_confirmation", TemplateData{
		"Name":            name,
		"ReferenceNumber": referenceNumber,
	})
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       []string{to},
		ToName:   name,
		Subject:  "Your application has been received",
		HTMLBody: htmlBody,
	})
}

// Validate checks the SMTP configuration.
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	return nil
}
