package models

import (
	"time"
)

// DueDateLayout is the wire format for due dates. Comparisons are
// date-only; no time-of-day component crosses the API.
const DueDateLayout = "2006-01-02"

// Status is the lifecycle state of a task. Overdue is derived from the
// due date, never set directly by a user action.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Task represents a single task as the server serializes it
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"` // YYYY-MM-DD, empty = none
	Category    string `json:"category,omitempty"`
	Status      Status `json:"status"`
}

// DueOn parses the task's due date. ok is false when the task has no
// due date or the stored value is malformed.
func (t Task) DueOn() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// User is the authenticated account returned by the identity endpoint
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Credentials is the login payload
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the account creation payload. ConfirmPassword is
// checked client-side and never sent.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// TaskFields is the editable field set sent on create and update.
// Updates are full-record replaces: every field is always sent.
type TaskFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Category    string `json:"category"`
	Status      Status `json:"status,omitempty"`
}

// Fields extracts the editable field set from a task for resending on
// update.
func (t Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Category:    t.Category,
		Status:      t.Status,
	}
}
