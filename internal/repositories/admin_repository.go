package repositories

import (
	"errors"
	"strings"

	"ayuteng_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *models.Admin) error
	FindByID(db *gorm.DB, id string) (*models.Admin, error)
	FindByEmail(db *gorm.DB, email string) (*models.Admin, error)
	CountAll(db *gorm.DB) (int64, error)
}

type AdminRepositoryImpl struct{}

func NewAdminRepository() AdminRepository {
	return &AdminRepositoryImpl{}
}

func (r *AdminRepositoryImpl) Create(db *gorm.DB, admin *models.Admin) error {
	var count int64
	if err := db.Model(&models.Admin{}).
		Where("LOWER(email) = ?", strings.ToLower(admin.Email)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminAlreadyExists
	}

	return db.Create(admin).Error
}

func (r *AdminRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Admin, error) {
	var admin models.Admin
	err := db.First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Admin, error) {
	var admin models.Admin
	err := db.First(&admin, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}
