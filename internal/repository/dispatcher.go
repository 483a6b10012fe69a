package repository

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"leave-api/internal/model"

	"github.com/google/uuid"
)

// Dispatcher executes typed commands against the store document
type Dispatcher struct {
	tx     TransactionManager
	logger *slog.Logger
	now    func() time.Time
}

// NewDispatcher returns a dispatcher running commands through tx
func NewDispatcher(tx TransactionManager, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{tx: tx, logger: logger, now: time.Now}
}

// Execute runs cmd inside the caller's transaction, or in a transaction of
// its own. Commands the dispatcher does not know return an empty result.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (*Result, error) {
	var res *Result
	err := d.tx.RunInTx(ctx, func(txCtx context.Context) error {
		state, _ := txFrom(txCtx)
		res = d.apply(state, cmd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) apply(state *txState, cmd Command) *Result {
	doc := state.doc
	if cmd != nil {
		d.logger.Debug("store command", slog.String("command", cmd.commandName()))
	}

	switch c := cmd.(type) {
	case LookupRoleByName:
		if role, ok := model.FindRoleByName(c.Name); ok {
			return &Result{Roles: []model.Role{role}}
		}
		return &Result{}

	case LookupUserWithRole:
		for _, u := range doc.Users {
			if (c.Email != "" && u.Email == c.Email) || (c.UserID != 0 && u.UserID == c.UserID) {
				return &Result{Users: []model.UserWithRole{withRole(u)}}
			}
		}
		return &Result{}

	case LookupUserByEmail:
		for _, u := range doc.Users {
			if u.Email == c.Email {
				return &Result{Users: []model.UserWithRole{{User: u}}}
			}
		}
		return &Result{}

	case InsertUser:
		user := model.User{
			UserID:       doc.NextUserID(),
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Email:        c.Email,
			PasswordHash: c.PasswordHash,
			RoleID:       c.RoleID,
		}
		doc.Users = append(doc.Users, user)
		state.dirty = true
		return &Result{InsertID: user.UserID, AffectedRows: 1}

	case InsertLeaveRequest:
		req := model.LeaveRequest{
			RequestID: doc.NextLeaveRequestID(),
			UserID:    c.UserID,
			TypeID:    c.TypeID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			TotalDays: c.TotalDays,
			Reason:    c.Reason,
			Status:    c.Status,
			CreatedAt: d.now().UTC(),
		}
		doc.LeaveRequests = append(doc.LeaveRequests, req)
		state.dirty = true
		return &Result{InsertID: req.RequestID, AffectedRows: 1}

	case ListLeaveRequestsWithRequester:
		users := make(map[int]model.User, len(doc.Users))
		for _, u := range doc.Users {
			users[u.UserID] = u
		}
		rows := make([]model.LeaveRequestView, 0, len(doc.LeaveRequests))
		for _, r := range doc.LeaveRequests {
			u := users[r.UserID]
			rows = append(rows, model.LeaveRequestView{
				LeaveRequest: r,
				TypeName:     model.LeaveTypeName(r.TypeID),
				FirstName:    u.FirstName,
				LastName:     u.LastName,
				Email:        u.Email,
			})
		}
		sortNewestFirst(rows)
		return &Result{Leaves: rows}

	case ListLeaveRequestsForUser:
		rows := []model.LeaveRequestView{}
		for _, r := range doc.LeaveRequests {
			if r.UserID == c.UserID {
				rows = append(rows, model.LeaveRequestView{LeaveRequest: r, TypeName: model.LeaveTypeName(r.TypeID)})
			}
		}
		sortNewestFirst(rows)
		return &Result{Leaves: rows}

	case LookupLeaveRequest:
		for _, r := range doc.LeaveRequests {
			if r.RequestID == c.RequestID {
				return &Result{Leaves: []model.LeaveRequestView{{LeaveRequest: r, TypeName: model.LeaveTypeName(r.TypeID)}}}
			}
		}
		return &Result{}

	case UpdateLeaveRequestStatus:
		for i := range doc.LeaveRequests {
			r := &doc.LeaveRequests[i]
			if r.RequestID != c.RequestID {
				continue
			}
			managerID := c.ManagerID
			r.Status = c.Status
			r.ManagerID = &managerID
			r.Comments = c.Comments
			state.dirty = true
			return &Result{AffectedRows: 1}
		}
		return &Result{AffectedRows: 0}

	case ListUsers:
		rows := make([]model.UserWithRole, 0, len(doc.Users))
		for _, u := range doc.Users {
			rows = append(rows, withRole(u))
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
		return &Result{Users: rows}

	case InsertAuditLog:
		entry := c.Entry
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = d.now().UTC()
		}
		doc.AuditLogs = append(doc.AuditLogs, entry)
		state.dirty = true
		return &Result{AffectedRows: 1}

	case ListAuditLogs:
		rows := make([]model.AuditLog, len(doc.AuditLogs))
		copy(rows, doc.AuditLogs)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
		return &Result{AuditLogs: rows}

	default:
		d.logger.Warn("unhandled store command", slog.Any("command", cmd))
		return &Result{}
	}
}

func withRole(u model.User) model.UserWithRole {
	role, _ := model.FindRoleByID(u.RoleID)
	return model.UserWithRole{User: u, RoleName: role.Name}
}

// sortNewestFirst orders by creation time, newest first, then by id
func sortNewestFirst(rows []model.LeaveRequestView) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].RequestID > rows[j].RequestID
	})
}
