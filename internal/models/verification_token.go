package models

import "time"

// EmailVerificationToken links a one-time token to an applicant. Tokens live
// for 24 hours; expiry is evaluated lazily at validation time, expired rows
// are never swept proactively.
type EmailVerificationToken struct {
	BaseModel

	OwnerID   string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Token     string     `gorm:"size:64;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed    bool       `gorm:"default:false" json:"is_used"`
	UsedAt    *time.Time `json:"used_at"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}

// IsExpired reports whether the token's 24 hour window has passed. The
// expiry instant itself is already expired.
func (t *EmailVerificationToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsLive reports whether the token can still be consumed.
func (t *EmailVerificationToken) IsLive(now time.Time) bool {
	return !t.IsUsed && !t.IsExpired(now)
}
