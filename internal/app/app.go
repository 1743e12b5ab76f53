package app

import (
	"errors"
	"fmt"

	"ayuteng_backend/internal/auth"
	"ayuteng_backend/internal/config"
	"ayuteng_backend/internal/email"
	"ayuteng_backend/internal/handlers"
	"ayuteng_backend/internal/logger"
	"ayuteng_backend/internal/middleware"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/routes"
	"ayuteng_backend/internal/services"
	"ayuteng_backend/internal/storage"
	"ayuteng_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Application{},
		&models.EmailVerificationToken{},
		&models.Admin{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)

	// Uploaded documents are served straight off disk.
	if cfg.Storage.BaseURL != "" && cfg.Storage.BasePath != "" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	emailProvider, err := email.NewProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	logger.Info("Email provider initialized", "provider", cfg.Email.Provider)

	appRepo := repositories.NewApplicationRepository()
	adminRepo := repositories.NewAdminRepository()
	tokenRepo := repositories.NewVerificationTokenRepository()

	customValidator := validator.New()

	verificationService := services.NewVerificationService(tokenRepo, appRepo)
	applicationService := services.NewApplicationService(appRepo, verificationService, emailProvider, customValidator)
	uploadService := services.NewUploadService(storageInstance)
	adminService := services.NewAdminService(adminRepo, appRepo, customValidator)
	exportService := services.NewExportService(appRepo)

	return &services.ServiceContainer{
		ApplicationService:  applicationService,
		VerificationService: verificationService,
		UploadService:       uploadService,
		AdminService:        adminService,
		ExportService:       exportService,
		EmailService:        emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler()

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.ApplicationService, container.VerificationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		UploadHandler:      handlers.NewUploadHandler(baseHandler, container.UploadService),
		AdminHandler:       handlers.NewAdminHandler(baseHandler, container.AdminService, container.ExportService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin guarantees at least one super admin exists so the dashboard
// is reachable on a fresh deployment.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	var existing models.Admin
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.Admin{
		Email:    adminEmail,
		Password: hashed,
		IsActive: true,
		Role:     models.AdminRoleSuper,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
