package handler

import (
	"net/http"

	"leave-api/internal/middleware"
	"leave-api/internal/model"
	"leave-api/internal/service"
	"leave-api/pkg/pagination"
	"leave-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService       service.AuthService
	auditService      service.AuditService
	statisticsService service.StatisticsService
	verifier          middleware.TokenVerifier
}

func NewAdminHandler(authService service.AuthService, auditService service.AuditService, statisticsService service.StatisticsService, verifier middleware.TokenVerifier) *AdminHandler {
	return &AdminHandler{
		authService:       authService,
		auditService:      auditService,
		statisticsService: statisticsService,
		verifier:          verifier,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/admin")
	group.Use(middleware.RequireAuth(h.verifier), middleware.RequireRole(model.ClaimAdmin))
	{
		group.GET("/dashboard", h.Dashboard)
		group.GET("/users", h.ListUsers)
		group.GET("/audit-logs", h.AuditLogs)
	}
}

type DashboardResponse struct {
	Message string                `json:"message"`
	Access  string                `json:"access"`
	Stats   model.LeaveStatistics `json:"stats"`
}

// Dashboard aggregates users and leave requests
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=DashboardResponse}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statisticsService.GetStatistics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, DashboardResponse{
		Message: "Welcome to the Admin Dashboard",
		Access:  "ADMIN_ONLY",
		Stats:   stats,
	}))
}

// ListUsers pages through registered users
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Paged}
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p := pagination.Parse(c)

	users, total, err := h.authService.ListUsers(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: users,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// AuditLogs pages through the audit trail, newest first
// @Summary      Get audit logs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Paged}
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: logs,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}
