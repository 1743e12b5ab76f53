package services

import (
	"ayuteng_backend/internal/auth"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/validator"
	"ayuteng_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CreateAdmin(db *gorm.DB, req *dto.CreateAdminRequest) (*models.Admin, error)
	Stats(db *gorm.DB) (*dto.StatsResponse, error)
	GetApplication(db *gorm.DB, id string) (*models.Application, error)
	ListApplications(db *gorm.DB, criteria repositories.ApplicationFilter) (*dto.ApplicationListResponse, error)
	UpdateStatus(db *gorm.DB, id string, req *dto.UpdateStatusRequest) error
}

type AdminServiceImpl struct {
	adminRepo repositories.AdminRepository
	appRepo   repositories.ApplicationRepository
	validator *validator.Validator
}

func NewAdminService(
	adminRepo repositories.AdminRepository,
	appRepo repositories.ApplicationRepository,
	v *validator.Validator,
) AdminService {
	return &AdminServiceImpl{
		adminRepo: adminRepo,
		appRepo:   appRepo,
		validator: v,
	}
}

func (s *AdminServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	fieldErrors := s.validator.Check(req)
	if fieldErrors.HasErrors() {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	admin, err := s.adminRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrAdminNotFound {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "auth", "failed to load admin", 500)
	}

	if !auth.CheckPasswordHash(req.Password, admin.Password) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if !admin.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	token, err := auth.GenerateToken(admin.ID, auth.KindAdmin, string(admin.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:       token,
		UserID:      admin.ID,
		Role:        string(admin.Role),
		RedirectURL: "/dashboard",
	}, nil
}

// CreateAdmin registers a staff account. Only super admins may call this;
// the route guard enforces it.
func (s *AdminServiceImpl) CreateAdmin(db *gorm.DB, req *dto.CreateAdminRequest) (*models.Admin, error) {
	fieldErrors := s.validator.Check(req)
	if fieldErrors.HasErrors() {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	admin := &models.Admin{
		Email:    req.Email,
		Password: hashed,
		IsActive: true,
		Role:     models.AdminRole(req.Role),
	}

	if err := s.adminRepo.Create(db, admin); err != nil {
		if err == repositories.ErrAdminAlreadyExists {
			return nil, apperrors.ConflictError("admin", "Admin with this email already exists")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to create admin", 500)
	}

	return admin, nil
}

// Stats builds the dashboard summary: totals plus status and gender
// breakdowns with percentages of the whole.
func (s *AdminServiceImpl) Stats(db *gorm.DB) (*dto.StatsResponse, error) {
	total, err := s.appRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to count applications", 500)
	}

	byStatus, err := s.appRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to count by status", 500)
	}

	byGender, err := s.appRepo.CountByGender(db)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to count by gender", 500)
	}

	resp := &dto.StatsResponse{
		Total:    total,
		ByStatus: make(map[string]dto.StatusBreakdown),
		ByGender: make(map[string]dto.StatusBreakdown),
	}

	// Every known status appears in the response, zero or not.
	for _, status := range []models.ApplicationStatus{
		models.StatusDraft, models.StatusSubmitted, models.StatusReviewing,
		models.StatusApproved, models.StatusRejected,
	} {
		resp.ByStatus[string(status)] = dto.StatusBreakdown{}
	}
	for _, row := range byStatus {
		resp.ByStatus[string(row.Status)] = dto.StatusBreakdown{
			Count:      row.Count,
			Percentage: percentage(row.Count, total),
		}
	}

	for _, row := range byGender {
		gender := row.Gender
		if gender == "" {
			gender = "other"
		}
		entry := resp.ByGender[gender]
		entry.Count += row.Count
		entry.Percentage = percentage(entry.Count, total)
		resp.ByGender[gender] = entry
	}

	return resp, nil
}

// GetApplication loads the full record for the review screen.
func (s *AdminServiceImpl) GetApplication(db *gorm.DB, id string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.NotFoundError("application", "Application not found")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to load application", 500)
	}
	return app, nil
}

func (s *AdminServiceImpl) ListApplications(db *gorm.DB, criteria repositories.ApplicationFilter) (*dto.ApplicationListResponse, error) {
	apps, total, err := s.appRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to list applications", 500)
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	items := make([]dto.ApplicationListItem, 0, len(apps))
	for _, app := range apps {
		items = append(items, dto.ApplicationListItem{
			ID:              app.ID,
			ReferenceNumber: app.ReferenceNumber,
			FirstName:       app.FirstName,
			LastName:        app.LastName,
			Email:           app.Email,
			Phone:           app.Phone,
			StartupName:     app.StartupName,
			Status:          string(app.Status),
			StepCursor:      app.StepCursor,
			IsVerified:      app.IsVerified,
			CreatedAt:       app.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return &dto.ApplicationListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateStatus moves an application along the review lifecycle. Transitions
// only run forward; anything else is rejected.
func (s *AdminServiceImpl) UpdateStatus(db *gorm.DB, id string, req *dto.UpdateStatusRequest) error {
	fieldErrors := s.validator.Check(req)
	if fieldErrors.HasErrors() {
		return apperrors.ValidationError(fieldErrors)
	}

	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return apperrors.NotFoundError("application", "Application not found")
		}
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to load application", 500)
	}

	target := models.ApplicationStatus(req.Status)
	if !app.Status.CanTransition(target) {
		return apperrors.New(apperrors.CodeInvalidStatus, "application",
			"Cannot move application from "+string(app.Status)+" to "+string(target), 409)
	}

	if err := s.appRepo.UpdateStatus(db, id, target, req.Notes); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "admin", "failed to update status", 500)
	}
	return nil
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
