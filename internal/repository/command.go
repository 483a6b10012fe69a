package repository

import "leave-api/internal/model"

// Command is one of the closed set of operations the Dispatcher understands
type Command interface {
	commandName() string
}

// LookupRoleByName finds a fixed role by name, ignoring case
type LookupRoleByName struct {
	Name string
}

// LookupUserWithRole finds the user whose email equals Email or whose id
// equals UserID, joined with its role name
type LookupUserWithRole struct {
	Email  string
	UserID int
}

// LookupUserByEmail finds a user by exact, case-sensitive email
type LookupUserByEmail struct {
	Email string
}

// InsertUser appends a user and reports the assigned id
type InsertUser struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	RoleID       int
}

// InsertLeaveRequest appends a leave request stamped with the creation time
type InsertLeaveRequest struct {
	UserID    int
	TypeID    int
	StartDate string
	EndDate   string
	TotalDays int
	Reason    *string
	Status    string
}

// ListLeaveRequestsWithRequester lists every request joined with requester details
type ListLeaveRequestsWithRequester struct{}

// ListLeaveRequestsForUser lists one user's requests
type ListLeaveRequestsForUser struct {
	UserID int
}

// LookupLeaveRequest finds a request by id
type LookupLeaveRequest struct {
	RequestID int
}

// UpdateLeaveRequestStatus overwrites status, manager and comments of a request
type UpdateLeaveRequestStatus struct {
	RequestID int
	Status    string
	ManagerID int
	Comments  *string
}

// ListUsers lists every user joined with its role name, by id
type ListUsers struct{}

// InsertAuditLog appends an audit entry
type InsertAuditLog struct {
	Entry model.AuditLog
}

// ListAuditLogs lists audit entries, newest first
type ListAuditLogs struct{}

func (LookupRoleByName) commandName() string               { return "lookup_role_by_name" }
func (LookupUserWithRole) commandName() string             { return "lookup_user_with_role" }
func (LookupUserByEmail) commandName() string              { return "lookup_user_by_email" }
func (InsertUser) commandName() string                     { return "insert_user" }
func (InsertLeaveRequest) commandName() string             { return "insert_leave_request" }
func (ListLeaveRequestsWithRequester) commandName() string { return "list_leave_requests_with_requester" }
func (ListLeaveRequestsForUser) commandName() string       { return "list_leave_requests_for_user" }
func (LookupLeaveRequest) commandName() string             { return "lookup_leave_request" }
func (UpdateLeaveRequestStatus) commandName() string       { return "update_leave_request_status" }
func (ListUsers) commandName() string                      { return "list_users" }
func (InsertAuditLog) commandName() string                 { return "insert_audit_log" }
func (ListAuditLogs) commandName() string                  { return "list_audit_logs" }

// Result carries the rows or mutation outcome of a command. Only the fields
// relevant to the executed command are populated.
type Result struct {
	Roles        []model.Role
	Users        []model.UserWithRole
	Leaves       []model.LeaveRequestView
	AuditLogs    []model.AuditLog
	InsertID     int
	AffectedRows int
}

// Empty reports whether the command matched nothing
func (r *Result) Empty() bool {
	return len(r.Roles) == 0 && len(r.Users) == 0 && len(r.Leaves) == 0 &&
		len(r.AuditLogs) == 0 && r.InsertID == 0 && r.AffectedRows == 0
}
