package handlers

import (
	"net/http"

	"ayuteng_backend/internal/middleware"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/services"
	"ayuteng_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const adminSessionCookieName = "ayt_admin_session"

type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	exportService services.ExportService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, exportService services.ExportService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		exportService: exportService,
	}
}

func (h *AdminHandler) RegisterRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.Login)
	}

	authed := api.Group("/admin")
	authed.Use(middleware.AdminMiddleware())
	{
		authed.GET("/stats", h.Stats)
		authed.GET("/applications", h.ListApplications)
		authed.GET("/applications/:id", h.GetApplication)
		authed.GET("/applications/:id/export", h.ExportApplication)
		authed.GET("/export", h.ExportApplications)
		authed.PATCH("/applications/:id/status", h.UpdateStatus)

		super := authed.Group("")
		super.Use(middleware.RequireRoles(models.AdminRoleSuper))
		{
			super.POST("/admins", h.CreateAdmin)
		}
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.adminService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetCookie(adminSessionCookieName, resp.Token, 3600, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !h.BindJSON(c, &req) {
		return
	}

	admin, err := h.adminService.CreateAdmin(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListApplications(c *gin.Context) {
	criteria, ok := h.parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.adminService.ListApplications(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetApplication(c *gin.Context) {
	app, err := h.adminService.GetApplication(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *AdminHandler) ExportApplications(c *gin.Context) {
	criteria, ok := h.parseFilter(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportApplications(h.GetDB(c), c.DefaultQuery("format", "csv"), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.writeExport(c, result)
}

func (h *AdminHandler) ExportApplication(c *gin.Context) {
	result, err := h.exportService.ExportApplication(h.GetDB(c), c.DefaultQuery("format", "csv"), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.writeExport(c, result)
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.adminService.UpdateStatus(h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) parseFilter(c *gin.Context) (repositories.ApplicationFilter, bool) {
	from, to, err := ParseQueryDateRange(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return repositories.ApplicationFilter{}, false
	}

	page, pageSize := ParsePagination(c)

	return repositories.ApplicationFilter{
		Status:   models.ApplicationStatus(c.Query("status")),
		Search:   c.Query("search"),
		DateFrom: from,
		DateTo:   to,
		Page:     page,
		PageSize: pageSize,
	}, true
}

func (h *AdminHandler) writeExport(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
