package handlers

import (
	"net/http"

	"ayuteng_backend/internal/services"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "ayt_session"

type AuthHandler struct {
	*BaseHandler
	appService services.ApplicationService
	verifier   services.VerificationService
}

func NewAuthHandler(base *BaseHandler, appService services.ApplicationService, verifier services.VerificationService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		appService:  appService,
		verifier:    verifier,
	}
}

func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	api.GET("/verify-email", h.VerifyEmail)
}

// Login authenticates an applicant and sets the session cookie alongside the
// token in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.appService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetCookie(sessionCookieName, resp.Token, 3600, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyEmail consumes the link from the verification email. Unknown,
// expired and already-used tokens all land here.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing verification token"))
		return
	}

	if err := h.verifier.VerifyEmail(h.GetDB(c), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyEmailResponse{
		Success:     true,
		Message:     "Email verified successfully. Please log in to continue your application.",
		RedirectURL: "/login",
	})
}
