package services

import (
	"testing"
	"time"

	"ayuteng_backend/internal/config"
	"ayuteng_backend/internal/email"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/validator"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Application{},
		&models.EmailVerificationToken{},
		&models.Admin{},
	))
	return db
}

// setupTestConfig installs a config without touching the filesystem.
func setupTestConfig(t *testing.T) {
	t.Helper()

	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.BaseURL = "http://localhost:4000"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	config.AppConfig = cfg

	t.Cleanup(func() { config.AppConfig = prev })
}

type testEnv struct {
	db       *gorm.DB
	apps     ApplicationService
	admins   AdminService
	verifier VerificationService
	exporter ExportService
	mailbox  *email.MockProvider
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	setupTestConfig(t)

	db := setupTestDB(t)

	appRepo := repositories.NewApplicationRepository()
	adminRepo := repositories.NewAdminRepository()
	tokenRepo := repositories.NewVerificationTokenRepository()
	mailbox := email.NewMockProvider()
	v := validator.New()

	verifier := NewVerificationService(tokenRepo, appRepo)

	return &testEnv{
		db:       db,
		apps:     NewApplicationService(appRepo, verifier, mailbox, v),
		admins:   NewAdminService(adminRepo, appRepo, v),
		verifier: verifier,
		exporter: NewExportService(appRepo),
		mailbox:  mailbox,
	}
}

func validStepOne(email string) *dto.StepOneRequest {
	return &dto.StepOneRequest{
		FirstName: "Amina",
		LastName:  "Bello",
		Email:     email,
		Password:  "str0ngpassword",
		Phone:     "08031234567",
		Gender:    "female",
		Dob:       time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
	}
}

func validStepTwo() *dto.StepTwoRequest {
	return &dto.StepTwoRequest{
		StartupName: "AgriLink",
		Description: "Marketplace connecting smallholder farmers to buyers",
		Locations:   "Lagos, Kano",
	}
}

func validStepThree() *dto.StepThreeRequest {
	return &dto.StepThreeRequest{
		FarmerChallenges:    "Poor market access and price opacity",
		SolutionDescription: "A mobile marketplace with transparent pricing",
		ProductStage:        "mvp",
		InnovationHighlight: "Offline-first ordering over USSD",
		PrimaryUsers:        "Smallholder farmers",
		NoOfActiveUsers:     120,
	}
}

func validStepNine() *dto.StepNineRequest {
	return &dto.StepNineRequest{
		PitchDeckURL:     "http://localhost:4000/uploads/pitch_deck_url/x.pdf",
		CacURL:           "http://localhost:4000/uploads/cac_url/x.pdf",
		AgreeToTosAyute:  true,
		AgreeToTosHeifer: true,
	}
}

// createDraft walks a fresh application through step one.
func createDraft(t *testing.T, env *testEnv, emailAddr string) string {
	t.Helper()

	resp, err := env.apps.CreateApplication(env.db, validStepOne(emailAddr))
	require.NoError(t, err)
	require.NotEmpty(t, resp.ApplicationID)
	return resp.ApplicationID
}
