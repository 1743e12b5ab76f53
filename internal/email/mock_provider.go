package email

import "sync"

// MockProvider records outgoing mail instead of sending it. Used by tests and
// by the env-only deployment mode.
type MockProvider struct {
	mu   sync.Mutex
	Sent []*Email

	// FailNext makes the next Send return an error, for failure-path tests.
	FailNext error
}

// NewMockProvider creates an in-memory provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailNext != nil {
		err := p.FailNext
		p.FailNext = nil
		return err
	}

	p.Sent = append(p.Sent, email)
	return nil
}

func (p *MockProvider) SendVerification(to, name, verifyURL string) error {
	return p.Send(&Email{
		To:       []string{to},
		ToName:   name,
		Subject:  "Verify your email address",
		HTMLBody: verifyURL,
	})
}

func (p *MockProvider) SendSubmissionConfirmation(to, name, referenceNumber string) error {
	return p.Send(&Email{
		To:       []string{to},
		ToName:   name,
		Subject:  "Your application has been received",
		HTMLBody: referenceNumber,
	})
}

func (p *MockProvider) Validate() error { return nil }

// Count returns how many messages were recorded.
func (p *MockProvider) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}

// Last returns the most recently recorded message, or nil.
func (p *MockProvider) Last() *Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Sent) == 0 {
		return nil
	}
	return p.Sent[len(p.Sent)-1]
}
