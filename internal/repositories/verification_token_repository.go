package repositories

import (
	"errors"
	"time"

	"ayuteng_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound        = errors.New("verification token not found")
	ErrTokenAlreadyConsumed = errors.New("verification token already used")
)

type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.EmailVerificationToken) error
	FindByToken(db *gorm.DB, token string) (*models.EmailVerificationToken, error)
	DeleteUnusedByOwner(db *gorm.DB, ownerID string) error
	ConsumeByToken(db *gorm.DB, token string, usedAt time.Time) error
}

type VerificationTokenRepositoryImpl struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &VerificationTokenRepositoryImpl{}
}

func (r *VerificationTokenRepositoryImpl) Create(db *gorm.DB, token *models.EmailVerificationToken) error {
	return db.Create(token).Error
}

func (r *VerificationTokenRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.EmailVerificationToken, error) {
	var row models.EmailVerificationToken
	err := db.First(&row, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

// DeleteUnusedByOwner removes all unconsumed tokens for one applicant.
// Issuing a fresh token always goes through here first, so at most one live
// token exists per owner. Consumed tokens stay as an audit trail.
func (r *VerificationTokenRepositoryImpl) DeleteUnusedByOwner(db *gorm.DB, ownerID string) error {
	return db.
		Where("owner_id = ? AND is_used = ?", ownerID, false).
		Delete(&models.EmailVerificationToken{}).Error
}

// ConsumeByToken marks a token used with a conditional update. The WHERE on
// is_used makes consumption single-shot even under concurrent requests: only
// one caller sees RowsAffected == 1.
func (r *VerificationTokenRepositoryImpl) ConsumeByToken(db *gorm.DB, token string, usedAt time.Time) error {
	result := db.Model(&models.EmailVerificationToken{}).
		Where("token = ? AND is_used = ?", token, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenAlreadyConsumed
	}
	return nil
}
