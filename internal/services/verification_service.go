package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type VerificationService interface {
	Issue(db *gorm.DB, ownerID string) (string, error)
	Validate(db *gorm.DB, token string) (bool, error)
	Lookup(db *gorm.DB, token string) (*models.EmailVerificationToken, error)
	VerifyEmail(db *gorm.DB, token string) error
}

type VerificationServiceImpl struct {
	tokenRepo repositories.VerificationTokenRepository
	appRepo   repositories.ApplicationRepository
}

func NewVerificationService(
	tokenRepo repositories.VerificationTokenRepository,
	appRepo repositories.ApplicationRepository,
) VerificationService {
	return &VerificationServiceImpl{
		tokenRepo: tokenRepo,
		appRepo:   appRepo,
	}
}

// Issue creates a fresh verification token for an applicant. Unused tokens
// for the same owner are removed first, so each applicant has at most one
// live token at a time.
func (s *VerificationServiceImpl) Issue(db *gorm.DB, ownerID string) (string, error) {
	token, err := generateSecureToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeleteUnusedByOwner(tx, ownerID); err != nil {
			return err
		}
		return s.tokenRepo.Create(tx, &models.EmailVerificationToken{
			OwnerID:   ownerID,
			Token:     token,
			ExpiresAt: time.Now().UTC().Add(tokenTTL),
			IsUsed:    false,
		})
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "verification", "failed to issue token", 500)
	}

	return token, nil
}

// Validate reports whether the token exists, is unused and not expired.
// It never mutates state.
func (s *VerificationServiceImpl) Validate(db *gorm.DB, token string) (bool, error) {
	row, err := s.tokenRepo.FindByToken(db, token)
	if err != nil {
		if err == repositories.ErrTokenNotFound {
			return false, nil
		}
		return false, err
	}
	return row.IsLive(time.Now().UTC()), nil
}

// Lookup returns the raw token row.
func (s *VerificationServiceImpl) Lookup(db *gorm.DB, token string) (*models.EmailVerificationToken, error) {
	return s.tokenRepo.FindByToken(db, token)
}

// VerifyEmail consumes the token and flips the owner's is_verified flag in a
// single transaction. Returns an invalid-token error for unknown, consumed
// and expired tokens alike.
func (s *VerificationServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	row, err := s.tokenRepo.FindByToken(db, token)
	if err != nil {
		if err == repositories.ErrTokenNotFound {
			return apperrors.NewInvalidTokenError("verification token is invalid")
		}
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "verification", "failed to look up token", 500)
	}

	now := time.Now().UTC()
	if row.IsExpired(now) {
		return apperrors.New(apperrors.CodeTokenExpired, "verification", "verification token has expired", 400)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.ConsumeByToken(tx, token, now); err != nil {
			if err == repositories.ErrTokenAlreadyConsumed {
				return apperrors.NewInvalidTokenError("verification token is invalid")
			}
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "verification", "failed to consume token", 500)
		}
		if err := s.appRepo.SetVerified(tx, row.OwnerID); err != nil {
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "verification", "failed to mark applicant verified", 500)
		}
		return nil
	})
}

func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
