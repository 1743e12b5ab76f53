package services

import "ayuteng_backend/internal/email"

// ServiceContainer bundles every application service.
type ServiceContainer struct {
	ApplicationService  ApplicationService
	VerificationService VerificationService
	UploadService       UploadService
	AdminService        AdminService
	ExportService       ExportService
	EmailService        email.Provider
}
