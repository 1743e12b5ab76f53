package dto

// LoginRequest is shared by applicant and admin logins.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token. For applicants RedirectURL points
// at the next incomplete step of their application.
type LoginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Role        string `json:"role,omitempty"`
}

// VerifyEmailResponse is the reply for the verification link.
type VerifyEmailResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
