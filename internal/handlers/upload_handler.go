package handlers

import (
	"net/http"

	"ayuteng_backend/internal/middleware"
	"ayuteng_backend/internal/services"
	"ayuteng_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(api *gin.RouterGroup) {
	authed := api.Group("/application")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/upload", h.UploadDocument)
	}
}

// UploadDocument accepts one PDF via multipart form: file, field_name and
// application_id. Applicants may only attach files to their own application.
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicationID := c.PostForm("application_id")
	fieldName := c.PostForm("field_name")

	if applicationID == "" || fieldName == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("application_id and field_name are required"))
		return
	}
	if userID != applicationID {
		apperrors.HandleError(c, apperrors.NewForbiddenError("You may only upload documents to your own application"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.uploadService.UploadDocument(
		c.Request.Context(),
		applicationID,
		fieldName,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
