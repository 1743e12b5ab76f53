package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	ApplicationHandler *ApplicationHandler
	UploadHandler      *UploadHandler
	AdminHandler       *AdminHandler
}
