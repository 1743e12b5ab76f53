package handlers

import (
	"net/http"

	"ayuteng_backend/internal/middleware"
	"ayuteng_backend/internal/services"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	appService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, appService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: base,
		appService:  appService,
	}
}

// RegisterRoutes mounts the nine-step wizard. Step one is public; the
// remaining steps require the applicant session and all share one handler
// driven by the step table.
func (h *ApplicationHandler) RegisterRoutes(api *gin.RouterGroup) {
	app := api.Group("/application")
	{
		app.POST("/step-one", h.StepOne)
	}

	authed := api.Group("/application")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/step-two/:id", h.handleStep(2))
		authed.POST("/step-three/:id", h.handleStep(3))
		authed.POST("/step-four/:id", h.handleStep(4))
		authed.POST("/step-five/:id", h.handleStep(5))
		authed.POST("/step-six/:id", h.handleStep(6))
		authed.POST("/step-seven/:id", h.handleStep(7))
		authed.POST("/step-eight/:id", h.handleStep(8))
		authed.POST("/step-nine/:id", h.handleStep(9))
		authed.GET("/:id", h.GetApplication)
	}
}

// StepOne creates the application and applicant account in one go.
func (h *ApplicationHandler) StepOne(c *gin.Context) {
	var req dto.StepOneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.appService.CreateApplication(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleStep builds the gin handler for one wizard step. The payload type
// comes from the step table; the service runs the shared validation and
// mutation path.
func (h *ApplicationHandler) handleStep(step int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		userID, ok := h.GetAndAuthorizeUserID(c)
		if !ok {
			return
		}
		if userID != id {
			apperrors.HandleError(c, apperrors.NewForbiddenError("You may only edit your own application"))
			return
		}

		payload := services.StepPayload(step)
		if payload == nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown application step"))
			return
		}
		if !h.BindJSON(c, payload) {
			return
		}

		resp, err := h.appService.ApplyStep(h.GetDB(c), id, step, payload)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// GetApplication returns the caller's own application.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id := c.Param("id")

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if userID != id {
		apperrors.HandleError(c, apperrors.NewForbiddenError("You may only view your own application"))
		return
	}

	app, err := h.appService.GetApplication(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
