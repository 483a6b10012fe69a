package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionRegisterUser     = "REGISTER_USER"
	ActionApplyLeave       = "APPLY_LEAVE"
	ActionUpdateLeaveState = "UPDATE_LEAVE_STATUS"
)

// AuditLog tracks Who, What, and When for every mutation of the store
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *int      `gorm:"index" json:"user_id"` // nil for anonymous actions such as registration
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID  string    `gorm:"type:varchar(50);index" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt time.Time `gorm:"autoCreateTime:false;index" json:"created_at"`
}
