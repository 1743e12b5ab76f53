package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoConfig holds Brevo transactional API settings.
type BrevoConfig struct {
	APIKey   string
	From     string
	FromName string
}

// BrevoProvider implements Provider over the Brevo v3 REST API.
type BrevoProvider struct {
	config   *BrevoConfig
	client   *http.Client
	renderer *TemplateManager
}

// NewBrevoProvider creates a new Brevo provider.
func NewBrevoProvider(config *BrevoConfig, renderer *TemplateManager) *BrevoProvider {
	return &BrevoProvider{
		config:   config,
		client:   &http.Client{Timeout: 15 * time.Second},
		renderer: renderer,
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoRecipient   `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

// Send posts a transactional email to the Brevo API.
func (p *BrevoProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("recipient email cannot be empty")
	}

	from := email.From
	if from == "" {
		from = p.config.From
	}
	fromName := email.FromName
	if fromName == "" {
		fromName = p.config.FromName
	}

	recipients := make([]brevoRecipient, 0, len(email.To))
	for _, to := range email.To {
		recipients = append(recipients, brevoRecipient{Email: to, Name: email.ToName})
	}

	payload := brevoPayload{
		Sender:      brevoRecipient{Email: from, Name: fromName},
		To:          recipients,
		Subject:     email.Subject,
		HTMLContent: email.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call brevo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendVerification sends the email verification link.
func (p *BrevoProvider) SendVerification(to, name, verifyURL string) error {
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
func (p *BrevoProvider) SendSubmissionConfirmation(to, name, referenceNumber string) error {
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

// Validate checks the Brevo configuration.
func (p *BrevoProvider) Validate() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("brevo api key is required")
	}
	return nil
}
