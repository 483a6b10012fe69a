package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Leave request statuses
const (
	LeaveStatusPending   = "Pending"
	LeaveStatusApproved  = "Approved"
	LeaveStatusRejected  = "Rejected"
	LeaveStatusCancelled = "Cancelled"
)

// DefaultLeaveTypeName labels requests whose type id is not in LeaveTypes
const DefaultLeaveTypeName = "Leave"

// LeaveTypes maps the known leave type ids to their labels
var LeaveTypes = map[int]string{
	1: "Annual",
	2: "Sick",
	3: "Personal",
	4: "Unpaid",
}

// LeaveTypeName returns the label for a type id
func LeaveTypeName(typeID int) string {
	if name, ok := LeaveTypes[typeID]; ok {
		return name
	}
	return DefaultLeaveTypeName
}

// IsTerminalStatus reports whether a status can be set by a manager decision
func IsTerminalStatus(status string) bool {
	switch status {
	case LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	}
	return false
}

// LeaveRequest is an employee's application for time off
type LeaveRequest struct {
	RequestID int       `gorm:"primaryKey;autoIncrement:false" json:"request_id"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	TypeID    int       `gorm:"not null" json:"type_id"`
	StartDate string    `gorm:"type:varchar(40);not null" json:"start_date"`
	EndDate   string    `gorm:"type:varchar(40);not null" json:"end_date"`
	TotalDays int       `gorm:"not null" json:"total_days"`
	Reason    *string   `gorm:"type:text" json:"reason"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	ManagerID *int      `json:"manager_id,omitempty"`
	Comments  *string   `gorm:"type:text" json:"comments,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;index" json:"created_at"`
}

// LeaveRequestView is a leave request enriched with its type label and,
// for the all-requests listing, the requester's details
type LeaveRequestView struct {
	LeaveRequest
	TypeName  string `json:"type_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// FlexInt decodes from either a JSON number or a numeric string.
// Browser forms post select values as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
