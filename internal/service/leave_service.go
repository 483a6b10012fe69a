package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"leave-api/internal/apperror"
	"leave-api/internal/model"
	"leave-api/internal/repository"
)

// --- DTOs ---

type ApplyLeaveRequest struct {
	TypeID    model.FlexInt `json:"typeId" binding:"required"`
	StartDate string        `json:"startDate" binding:"required,leavedate"`
	EndDate   string        `json:"endDate" binding:"required,leavedate"`
	Reason    *string       `json:"reason"`
}

type ApplyLeaveResponse struct {
	Message   string `json:"message"`
	RequestID int    `json:"requestId"`
	TotalDays int    `json:"totalDays"`
}

type UpdateStatusRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments"`
	// ExpectedStatus, when set, must equal the current status for the update to apply
	ExpectedStatus string `json:"expectedStatus"`
}

type UpdateStatusResponse struct {
	Message   string `json:"message"`
	RequestID int    `json:"requestId"`
	Status    string `json:"status"`
}

var (
	errMissingLeaveFields = apperror.Validation("Type ID, Start Date, and End Date are required")
	errInvalidRange       = apperror.Validation("End date must be after start date")
	errInvalidStatus      = apperror.Validation("Invalid status. Must be Approved, Rejected, or Cancelled")
	errLeaveNotFound      = apperror.NotFound("Leave request not found")
)

// --- Interface ---

type LeaveService interface {
	Apply(ctx context.Context, identity model.Identity, req ApplyLeaveRequest) (*ApplyLeaveResponse, error)
	UpdateStatus(ctx context.Context, identity model.Identity, requestID int, req UpdateStatusRequest) (*UpdateStatusResponse, error)
	MyHistory(ctx context.Context, identity model.Identity) ([]model.LeaveRequestView, error)
	AllHistory(ctx context.Context) ([]model.LeaveRequestView, error)
	Pending(ctx context.Context) ([]model.LeaveRequestView, error)
}

type leaveService struct {
	leaves   repository.LeaveRepository
	users    repository.UserRepository
	audit    repository.AuditRepository
	tx       repository.TransactionManager
	hub      EventBroadcaster // optional
	recorder LeaveRecorder    // optional
}

func NewLeaveService(leaves repository.LeaveRepository, users repository.UserRepository, audit repository.AuditRepository, tx repository.TransactionManager, hub EventBroadcaster, recorder LeaveRecorder) LeaveService {
	return &leaveService{leaves: leaves, users: users, audit: audit, tx: tx, hub: hub, recorder: recorder}
}

// --- Implementation ---

func (s *leaveService) Apply(ctx context.Context, identity model.Identity, req ApplyLeaveRequest) (*ApplyLeaveResponse, error) {
	if req.TypeID == 0 || req.StartDate == "" || req.EndDate == "" {
		return nil, errMissingLeaveFields
	}
	start, err := ParseLeaveDate(req.StartDate)
	if err != nil {
		return nil, apperror.Validationf("Invalid start date %q, expected YYYY-MM-DD", req.StartDate)
	}
	end, err := ParseLeaveDate(req.EndDate)
	if err != nil {
		return nil, apperror.Validationf("Invalid end date %q, expected YYYY-MM-DD", req.EndDate)
	}

	totalDays := CountLeaveDays(start, end)
	if totalDays <= 0 {
		return nil, errInvalidRange
	}

	leave := &model.LeaveRequest{
		UserID:    identity.UserID,
		TypeID:    int(req.TypeID),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    model.LeaveStatusPending,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByIDWithRole(txCtx, identity.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errUserNotFound
			}
			return err
		}
		if err := s.leaves.Create(txCtx, leave); err != nil {
			return err
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:   &identity.UserID,
			Action:   model.ActionApplyLeave,
			EntityID: strconv.Itoa(leave.RequestID),
			Details:  auditDetails(map[string]any{"typeId": leave.TypeID, "startDate": leave.StartDate, "endDate": leave.EndDate, "totalDays": totalDays}),
		})
	})
	if err != nil {
		return nil, storeError("failed to apply for leave", err)
	}

	s.broadcast(EventLeaveApplied, map[string]any{
		"requestId": leave.RequestID,
		"userId":    leave.UserID,
		"typeName":  model.LeaveTypeName(leave.TypeID),
		"totalDays": totalDays,
		"status":    leave.Status,
	})
	if s.recorder != nil {
		s.recorder.LeaveApplied(model.LeaveTypeName(leave.TypeID))
	}

	return &ApplyLeaveResponse{
		Message:   "Leave application submitted successfully",
		RequestID: leave.RequestID,
		TotalDays: totalDays,
	}, nil
}

// UpdateStatus records the decision of identity on a request. Without an
// expected status the update overwrites whatever decision was recorded before.
func (s *leaveService) UpdateStatus(ctx context.Context, identity model.Identity, requestID int, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	if !model.IsTerminalStatus(req.Status) {
		return nil, errInvalidStatus
	}

	var previous string
	var ownerID int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.leaves.FindByID(txCtx, requestID)
		if errors.Is(err, repository.ErrNotFound) {
			return errLeaveNotFound
		}
		if err != nil {
			return err
		}
		if req.ExpectedStatus != "" && current.Status != req.ExpectedStatus {
			return apperror.Conflict(fmt.Sprintf("Leave request is %s, expected %s", current.Status, req.ExpectedStatus))
		}
		previous, ownerID = current.Status, current.UserID

		affected, err := s.leaves.UpdateStatus(txCtx, requestID, req.Status, identity.UserID, req.Comments)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errLeaveNotFound
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:   &identity.UserID,
			Action:   model.ActionUpdateLeaveState,
			EntityID: strconv.Itoa(requestID),
			Details:  auditDetails(map[string]any{"from": previous, "to": req.Status}),
		})
	})
	if err != nil {
		return nil, storeError("failed to update leave status", err)
	}

	s.broadcast(EventLeaveStatusChanged, map[string]any{
		"requestId": requestID,
		"userId":    ownerID,
		"managerId": identity.UserID,
		"from":      previous,
		"status":    req.Status,
	})
	if s.recorder != nil {
		s.recorder.LeaveStatusChanged(req.Status)
	}

	return &UpdateStatusResponse{
		Message:   fmt.Sprintf("Leave request %s successfully", strings.ToLower(req.Status)),
		RequestID: requestID,
		Status:    req.Status,
	}, nil
}

func (s *leaveService) MyHistory(ctx context.Context, identity model.Identity) ([]model.LeaveRequestView, error) {
	leaves, err := s.leaves.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, storeError("failed to load leave history", err)
	}
	return leaves, nil
}

func (s *leaveService) AllHistory(ctx context.Context) ([]model.LeaveRequestView, error) {
	leaves, err := s.leaves.ListWithRequester(ctx)
	if err != nil {
		return nil, storeError("failed to load leave requests", err)
	}
	return leaves, nil
}

// Pending returns the requests still awaiting a decision, newest first
func (s *leaveService) Pending(ctx context.Context) ([]model.LeaveRequestView, error) {
	all, err := s.AllHistory(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]model.LeaveRequestView, 0, len(all))
	for _, l := range all {
		if l.Status == model.LeaveStatusPending {
			pending = append(pending, l)
		}
	}
	return pending, nil
}

func (s *leaveService) broadcast(eventType string, payload any) {
	if s.hub != nil {
		s.hub.BroadcastEvent(eventType, payload)
	}
}
