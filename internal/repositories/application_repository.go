package repositories

import (
	"errors"
	"strings"
	"time"

	"ayuteng_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
)

// ApplicationFilter narrows the admin listing. Zero values mean "no filter".
type ApplicationFilter struct {
	Status   models.ApplicationStatus
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// StatusCount is one row of the status breakdown.
type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

// GenderCount is one row of the gender breakdown.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByEmail(db *gorm.DB, email string) (*models.Application, error)
	Save(db *gorm.DB, app *models.Application) error
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, notes string) error
	SetVerified(db *gorm.DB, id string) error
	FindWithFilter(db *gorm.DB, criteria ApplicationFilter) ([]models.Application, int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB) ([]StatusCount, error)
	CountByGender(db *gorm.DB) ([]GenderCount, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	var count int64
	if err := db.Model(&models.Application{}).
		Where("LOWER(email) = ?", strings.ToLower(app.Email)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailAlreadyExists
	}

	return db.Create(app).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Application, error) {
	var app models.Application
	err := db.First(&app, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Save(db *gorm.DB, app *models.Application) error {
	return db.Save(app).Error
}

// UpdateStatus moves the record to a new status. Notes overwrite the stored
// review notes only when the reviewer supplied any.
func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, notes string) error {
	updates := map[string]interface{}{"status": status}
	if notes != "" {
		updates["review_notes"] = notes
	}

	result := db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) SetVerified(db *gorm.DB, id string) error {
	result := db.Model(&models.Application{}).
		Where("id = ?", id).
		Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// FindWithFilter returns a page of applications plus the total count matching
// the criteria. Search matches name, email, phone, startup name and reference
// number, case-insensitively.
func (r *ApplicationRepositoryImpl) FindWithFilter(db *gorm.DB, criteria ApplicationFilter) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		pattern := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(startup_name) LIKE ? OR LOWER(reference_number) LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}
	if criteria.DateFrom != nil {
		query = query.Where("created_at >= ?", *criteria.DateFrom)
	}
	if criteria.DateTo != nil {
		query = query.Where("created_at <= ?", *criteria.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var apps []models.Application
	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *ApplicationRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByStatus(db *gorm.DB) ([]StatusCount, error) {
	var rows []StatusCount
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *ApplicationRepositoryImpl) CountByGender(db *gorm.DB) ([]GenderCount, error) {
	var rows []GenderCount
	err := db.Model(&models.Application{}).
		Select("gender, COUNT(*) as count").
		Group("gender").
		Scan(&rows).Error
	return rows, err
}
