package service

import (
	"encoding/json"
	"errors"

	"leave-api/internal/apperror"
)

// Live event types pushed to websocket subscribers
const (
	EventLeaveApplied       = "leave.applied"
	EventLeaveStatusChanged = "leave.status_changed"
)

// EventBroadcaster pushes events to live subscribers. Delivery is best effort.
type EventBroadcaster interface {
	BroadcastEvent(eventType string, payload any)
}

// LeaveRecorder counts workflow outcomes for metrics
type LeaveRecorder interface {
	LeaveApplied(typeName string)
	LeaveStatusChanged(status string)
}

// auditDetails serializes an audit payload; marshalling a map of scalars cannot fail
func auditDetails(details map[string]any) string {
	raw, _ := json.Marshal(details)
	return string(raw)
}

// storeError passes classified errors through and wraps anything else as internal
func storeError(msg string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(msg, err)
}
