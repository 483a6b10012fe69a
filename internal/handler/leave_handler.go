package handler

import (
	"net/http"
	"strconv"

	"leave-api/internal/middleware"
	"leave-api/internal/model"
	"leave-api/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaveHandler struct {
	leaveService service.LeaveService
	verifier     middleware.TokenVerifier
}

func NewLeaveHandler(leaveService service.LeaveService, verifier middleware.TokenVerifier) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService, verifier: verifier}
}

func (h *LeaveHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/leaves")
	group.Use(middleware.RequireAuth(h.verifier))
	{
		group.POST("/apply", h.Apply)
		group.GET("/my-history", h.MyHistory)
		group.GET("/all", middleware.RequireRole(model.ClaimAdmin), h.AllLeaves)
		group.PATCH("/:id/status", middleware.RequireRole(model.ClaimManager, model.ClaimAdmin), h.UpdateStatus)
	}
}

type LeaveHistoryResponse struct {
	Count  int                      `json:"count"`
	Leaves []model.LeaveRequestView `json:"leaves"`
}

type AllLeavesResponse struct {
	Count     int                      `json:"count"`
	AllLeaves []model.LeaveRequestView `json:"allLeaves"`
}

// Apply submits a leave request for the caller
// @Summary      Apply for leave
// @Description  typeId may be a number or a numeric string; dates are YYYY-MM-DD or RFC3339
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ApplyLeaveRequest  true  "Leave application"
// @Success      201      {object}  service.ApplyLeaveResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/leaves/apply [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	var req service.ApplyLeaveRequest
	if err := bindJSON(c, &req, "Type ID, Start Date, and End Date are required"); err != nil {
		_ = c.Error(err)
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	res, err := h.leaveService.Apply(c.Request.Context(), *identity, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// MyHistory lists the caller's requests
// @Summary      My leave history
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  LeaveHistoryResponse
// @Failure      401  {object}  response.Response
// @Router       /api/leaves/my-history [get]
func (h *LeaveHandler) MyHistory(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	leaves, err := h.leaveService.MyHistory(c.Request.Context(), *identity)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LeaveHistoryResponse{Count: len(leaves), Leaves: leaves})
}

// AllLeaves lists every request with requester details
// @Summary      All leave requests
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  AllLeavesResponse
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/leaves/all [get]
func (h *LeaveHandler) AllLeaves(c *gin.Context) {
	leaves, err := h.leaveService.AllHistory(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AllLeavesResponse{Count: len(leaves), AllLeaves: leaves})
}

// UpdateStatus approves, rejects or cancels a request
// @Summary      Decide a leave request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                          true  "Request ID"
// @Param        payload  body      service.UpdateStatusRequest  true  "Decision"
// @Success      200      {object}  service.UpdateStatusResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/leaves/{id}/status [patch]
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := bindJSON(c, &req, "Invalid status. Must be Approved, Rejected, or Cancelled"); err != nil {
		_ = c.Error(err)
		return
	}

	// Malformed ids match no request; the status is still checked first.
	id, _ := strconv.Atoi(c.Param("id"))

	identity, _ := middleware.CurrentIdentity(c)
	res, err := h.leaveService.UpdateStatus(c.Request.Context(), *identity, id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}
