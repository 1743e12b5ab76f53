package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager renders the built-in email templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the portal templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	tm.AddTemplate("verification", verificationTemplate)
	tm.AddTemplate("submission_confirmation", submissionConfirmationTemplate)
	return tm
}

// Render renders a template with data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate registers a template under a name.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

const verificationTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Verify your email address</h2>
  <p>Hello {{.Name}},</p>
  <p>Thank you for starting your AYuTe Africa Challenge application. Please confirm
  your email address by clicking the link below. The link is valid for 24 hours.</p>
  <p><a href="{{.VerifyURL}}" style="background: #1a7f37; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Verify Email</a></p>
  <p>If the button does not work, copy this address into your browser:<br>{{.VerifyURL}}</p>
  <p>If you did not create this application you can ignore this message.</p>
</body>
</html>`

const submissionConfirmationTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Application received</h2>
  <p>Hello {{.Name}},</p>
  <p>Your application to the AYuTe Africa Challenge has been submitted successfully.</p>
  <p>Your reference number is <strong>{{.ReferenceNumber}}</strong>. Keep it for any
  correspondence about your application.</p>
  <p>Our team will review your submission and contact you by email.</p>
</body>
</html>`
