package models

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notification is a transient user-facing message. A zero Duration means the
// notification stays until dismissed.
type Notification struct {
	ID        string        `json:"id"`
	Severity  Severity      `json:"type"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
