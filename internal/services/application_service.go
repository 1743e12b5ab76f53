package services

import (
	"fmt"
	"strings"
	"time"

	"ayuteng_backend/internal/auth"
	"ayuteng_backend/internal/config"
	"ayuteng_backend/internal/email"
	"ayuteng_backend/internal/logger"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/validator"
	"ayuteng_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minApplicantAge = 18

type ApplicationService interface {
	CreateApplication(db *gorm.DB, req *dto.StepOneRequest) (*dto.StepResponse, error)
	ApplyStep(db *gorm.DB, id string, step int, payload interface{}) (*dto.StepResponse, error)
	GetApplication(db *gorm.DB, id string) (*models.Application, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type ApplicationServiceImpl struct {
	appRepo       repositories.ApplicationRepository
	verifier      VerificationService
	emailProvider email.Provider
	validator     *validator.Validator
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	verifier VerificationService,
	emailProvider email.Provider,
	v *validator.Validator,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:       appRepo,
		verifier:      verifier,
		emailProvider: emailProvider,
		validator:     v,
	}
}

// CreateApplication handles the first wizard step: it registers the founder,
// creates the draft record and emails the verification link.
func (s *ApplicationServiceImpl) CreateApplication(db *gorm.DB, req *dto.StepOneRequest) (*dto.StepResponse, error) {
	fieldErrors := s.validator.Check(req)

	if !req.Dob.IsZero() && ageAt(req.Dob, time.Now()) < minApplicantAge {
		fieldErrors.Add("dob", "You must be 18 years or older to apply")
	}

	if fieldErrors.HasErrors() {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	app := &models.Application{
		StepCursor:      2,
		ReferenceNumber: generateReferenceNumber(),
		Status:          models.StatusDraft,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        hashed,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Dob:             req.Dob,
	}

	if err := s.appRepo.Create(db, app); err != nil {
		if err == repositories.ErrEmailAlreadyExists {
			return nil, apperrors.ConflictError("application", "Email address is already registered").
				WithDetails(validator.FieldErrors{"email": {"Email address is already registered"}})
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "application", "failed to create application", 500)
	}

	token, err := s.verifier.Issue(db, app.ID)
	if err != nil {
		return nil, err
	}

	s.sendVerificationAsync(app, token)

	return &dto.StepResponse{
		Success:       true,
		ApplicationID: app.ID,
		NextStep:      2,
		RedirectURL:   fmt.Sprintf("/verify?email=%s", app.Email),
		Message:       "Personal information saved successfully",
	}, nil
}

// ApplyStep runs one of steps 2..9 through the shared rule table. The step
// cursor points at the next step to show and only ever moves forward:
// completing step N advances it to max(cursor, N+1), so revisiting an
// earlier step never loses progress.
func (s *ApplicationServiceImpl) ApplyStep(db *gorm.DB, id string, step int, payload interface{}) (*dto.StepResponse, error) {
	rule, ok := stepRules[step]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown application step: %d", step))
	}

	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.NotFoundError("application", "Application not found")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "application", "failed to load application", 500)
	}

	if !app.IsEditable() {
		return nil, apperrors.ConflictError("application", "Application has been submitted and can no longer be edited")
	}

	fieldErrors := s.validator.Check(payload)
	if rule.Check != nil {
		fieldErrors.Merge(rule.Check(app, payload))
	}
	if fieldErrors.HasErrors() {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	rule.Apply(app, payload)

	if next := step + 1; next > app.StepCursor {
		app.StepCursor = next
	}
	if app.StepCursor > lastStep {
		app.StepCursor = lastStep
	}

	submitting := step == lastStep
	if submitting {
		app.Status = models.StatusSubmitted
	}

	if err := s.appRepo.Save(db, app); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "application", "failed to save application", 500)
	}

	resp := &dto.StepResponse{
		Success:       true,
		ApplicationID: app.ID,
	}

	if submitting {
		s.sendConfirmationAsync(app)
		resp.Message = "Application submitted successfully!"
		resp.RedirectURL = fmt.Sprintf("/application/success/%s", app.ID)
	} else {
		resp.NextStep = step + 1
		resp.RedirectURL = fmt.Sprintf("/application/%s/%s", StepRoute(step+1), app.ID)
	}

	return resp, nil
}

func (s *ApplicationServiceImpl) GetApplication(db *gorm.DB, id string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.NotFoundError("application", "Application not found")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "application", "failed to load application", 500)
	}
	return app, nil
}

// Login authenticates an applicant and points them at their next incomplete
// step. Unverified accounts are rejected until the email link is clicked.
func (s *ApplicationServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	fieldErrors := s.validator.Check(req)
	if fieldErrors.HasErrors() {
		return nil, apperrors.ValidationError(fieldErrors)
	}

	app, err := s.appRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "auth", "failed to load application", 500)
	}

	if !auth.CheckPasswordHash(req.Password, app.Password) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if !app.IsVerified {
		return nil, apperrors.NewForbiddenError("Please verify your email address before logging in")
	}

	token, err := auth.GenerateToken(app.ID, auth.KindApplicant, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	redirect := fmt.Sprintf("/application/%s/%s", StepRoute(nextStepFor(app)), app.ID)
	if app.Status != models.StatusDraft {
		redirect = fmt.Sprintf("/application/success/%s", app.ID)
	}

	return &dto.LoginResponse{
		Token:       token,
		UserID:      app.ID,
		RedirectURL: redirect,
	}, nil
}

// nextStepFor resolves where a returning applicant should continue.
func nextStepFor(app *models.Application) int {
	next := app.StepCursor
	if next <= firstStep {
		next = firstStep + 1
	}
	if next > lastStep {
		next = lastStep
	}
	return next
}

func (s *ApplicationServiceImpl) sendVerificationAsync(app *models.Application, token string) {
	cfg := config.GetConfig()
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(cfg.Server.BaseURL, "/"), token)
	name := app.FirstName

	go func() {
		if err := s.emailProvider.SendVerification(app.Email, name, verifyURL); err != nil {
			logger.GetLogger().Error("failed to send verification email",
				"error", err.Error(), "application_id", app.ID)
		}
	}()
}

func (s *ApplicationServiceImpl) sendConfirmationAsync(app *models.Application) {
	to := app.Email
	name := app.FirstName
	ref := app.ReferenceNumber
	id := app.ID

	go func() {
		if err := s.emailProvider.SendSubmissionConfirmation(to, name, ref); err != nil {
			logger.GetLogger().Error("failed to send submission confirmation",
				"error", err.Error(), "application_id", id)
		}
	}()
}

// generateReferenceNumber builds the human-facing code handed to applicants,
// e.g. AYT-3F9A0C12BD.
func generateReferenceNumber() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "AYT-" + strings.ToUpper(hex[:10])
}

func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
