package email

// Email represents an outgoing message.
type Email struct {
	From     string
	FromName string
	To       []string
	ToName   string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData holds values rendered into email templates.
type TemplateData map[string]interface{}
