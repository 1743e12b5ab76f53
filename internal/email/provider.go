package email

// Provider defines the interface for sending email.
type Provider interface {
	// Send sends a plain email message
	Send(email *Email) error

	// SendVerification sends the email verification link
	SendVerification(to, name, verifyURL string) error

	// SendSubmissionConfirmation sends the post-submission confirmation
	SendSubmissionConfirmation(to, name, referenceNumber string) error

	// Validate checks the provider configuration
	Validate() error
}
