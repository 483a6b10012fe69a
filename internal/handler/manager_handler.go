package handler

import (
	"net/http"

	"leave-api/internal/middleware"
	"leave-api/internal/model"
	"leave-api/internal/service"
	"leave-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type ManagerHandler struct {
	leaveService service.LeaveService
	verifier     middleware.TokenVerifier
}

func NewManagerHandler(leaveService service.LeaveService, verifier middleware.TokenVerifier) *ManagerHandler {
	return &ManagerHandler{leaveService: leaveService, verifier: verifier}
}

func (h *ManagerHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/manager")
	group.Use(middleware.RequireAuth(h.verifier))
	{
		group.GET("/requests", middleware.RequireRole(model.ClaimManager, model.ClaimAdmin), h.PendingRequests)
		group.POST("/approve-leave", middleware.RequireRole(model.ClaimManager), h.ApproveLeave)
	}
}

type PendingRequestsResponse struct {
	Message  string                   `json:"message"`
	Access   string                   `json:"access"`
	Count    int                      `json:"count"`
	Requests []model.LeaveRequestView `json:"requests"`
}

type ApproveLeaveRequest struct {
	RequestID model.FlexInt `json:"requestId" binding:"required"`
	Comments  *string       `json:"comments"`
}

// PendingRequests lists requests awaiting a decision
// @Summary      Pending leave requests
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=PendingRequestsResponse}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/manager/requests [get]
func (h *ManagerHandler) PendingRequests(c *gin.Context) {
	pending, err := h.leaveService.Pending(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, PendingRequestsResponse{
		Message:  "Manager/Admin: Viewing pending leave requests",
		Access:   "MANAGER_OR_ADMIN",
		Count:    len(pending),
		Requests: pending,
	}))
}

// ApproveLeave approves a request that is still pending
// @Summary      Approve a pending request
// @Tags         manager
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      ApproveLeaveRequest  true  "Request to approve"
// @Success      200      {object}  service.UpdateStatusResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/manager/approve-leave [post]
func (h *ManagerHandler) ApproveLeave(c *gin.Context) {
	var req ApproveLeaveRequest
	if err := bindJSON(c, &req, "Request ID is required"); err != nil {
		_ = c.Error(err)
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	res, err := h.leaveService.UpdateStatus(c.Request.Context(), *identity, int(req.RequestID), service.UpdateStatusRequest{
		Status:         model.LeaveStatusApproved,
		Comments:       req.Comments,
		ExpectedStatus: model.LeaveStatusPending,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}
