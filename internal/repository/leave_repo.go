package repository

import (
	"context"

	"leave-api/internal/model"
)

type LeaveRepository interface {
	Create(ctx context.Context, req *model.LeaveRequest) error
	FindByID(ctx context.Context, id int) (*model.LeaveRequest, error)
	ListWithRequester(ctx context.Context) ([]model.LeaveRequestView, error)
	ListByUser(ctx context.Context, userID int) ([]model.LeaveRequestView, error)
	UpdateStatus(ctx context.Context, id int, status string, managerID int, comments *string) (int, error)
}

type leaveRepository struct {
	d *Dispatcher
}

func NewLeaveRepository(d *Dispatcher) LeaveRepository {
	return &leaveRepository{d: d}
}

// Create inserts the request and sets its id; CreatedAt is reloaded by callers that need it
func (r *leaveRepository) Create(ctx context.Context, req *model.LeaveRequest) error {
	res, err := r.d.Execute(ctx, InsertLeaveRequest{
		UserID:    req.UserID,
		TypeID:    req.TypeID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: req.TotalDays,
		Reason:    req.Reason,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	req.RequestID = res.InsertID
	return nil
}

func (r *leaveRepository) FindByID(ctx context.Context, id int) (*model.LeaveRequest, error) {
	res, err := r.d.Execute(ctx, LookupLeaveRequest{RequestID: id})
	if err != nil {
		return nil, err
	}
	if len(res.Leaves) == 0 {
		return nil, ErrNotFound
	}
	return &res.Leaves[0].LeaveRequest, nil
}

func (r *leaveRepository) ListWithRequester(ctx context.Context) ([]model.LeaveRequestView, error) {
	res, err := r.d.Execute(ctx, ListLeaveRequestsWithRequester{})
	if err != nil {
		return nil, err
	}
	return res.Leaves, nil
}

func (r *leaveRepository) ListByUser(ctx context.Context, userID int) ([]model.LeaveRequestView, error) {
	res, err := r.d.Execute(ctx, ListLeaveRequestsForUser{UserID: userID})
	if err != nil {
		return nil, err
	}
	return res.Leaves, nil
}

// UpdateStatus returns the number of affected rows (0 or 1)
func (r *leaveRepository) UpdateStatus(ctx context.Context, id int, status string, managerID int, comments *string) (int, error) {
	res, err := r.d.Execute(ctx, UpdateLeaveRequestStatus{
		RequestID: id,
		Status:    status,
		ManagerID: managerID,
		Comments:  comments,
	})
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}
