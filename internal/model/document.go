package model

import "encoding/json"

// Sequence names used by the relational store
const (
	SequenceUsers         = "users"
	SequenceLeaveRequests = "leave_requests"
)

// Sequences holds the last id handed out per collection. Ids are never reused,
// even if rows are removed by hand from the backing file.
type Sequences struct {
	Users         int `json:"users"`
	LeaveRequests int `json:"leaveRequests"`
}

// Sequence is the relational form of one Sequences counter
type Sequence struct {
	Name  string `gorm:"primaryKey;type:varchar(50)"`
	Value int    `gorm:"not null"`
}

// Document is the whole persisted state, read and written in one piece
type Document struct {
	Users         []User         `json:"users"`
	LeaveRequests []LeaveRequest `json:"leaveRequests"`
	AuditLogs     []AuditLog     `json:"auditLogs"`
	Sequences     Sequences      `json:"sequences"`
}

// storedLeaveRequest reads type_id as a number or a numeric string. Older
// documents kept the value exactly as the browser form posted it.
type storedLeaveRequest struct {
	LeaveRequest
	TypeID FlexInt `json:"type_id"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	aux := struct {
		*plain
		LeaveRequests []storedLeaveRequest `json:"leaveRequests"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.LeaveRequests == nil {
		d.LeaveRequests = nil
		return nil
	}
	d.LeaveRequests = make([]LeaveRequest, len(aux.LeaveRequests))
	for i, r := range aux.LeaveRequests {
		r.LeaveRequest.TypeID = int(r.TypeID)
		d.LeaveRequests[i] = r.LeaveRequest
	}
	return nil
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{
		Users:         []User{},
		LeaveRequests: []LeaveRequest{},
		AuditLogs:     []AuditLog{},
	}
}

// Normalize replaces nil collections and lifts the sequences to at least the
// highest stored id, so documents written without sequences keep working.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.LeaveRequests == nil {
		d.LeaveRequests = []LeaveRequest{}
	}
	if d.AuditLogs == nil {
		d.AuditLogs = []AuditLog{}
	}
	for _, u := range d.Users {
		if u.UserID > d.Sequences.Users {
			d.Sequences.Users = u.UserID
		}
	}
	for _, r := range d.LeaveRequests {
		if r.RequestID > d.Sequences.LeaveRequests {
			d.Sequences.LeaveRequests = r.RequestID
		}
	}
}

// NextUserID advances and returns the user sequence
func (d *Document) NextUserID() int {
	d.Sequences.Users++
	return d.Sequences.Users
}

// NextLeaveRequestID advances and returns the leave request sequence
func (d *Document) NextLeaveRequestID() int {
	d.Sequences.LeaveRequests++
	return d.Sequences.LeaveRequests
}
