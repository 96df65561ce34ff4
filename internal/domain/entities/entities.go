package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNoteNotFound = errors.New("note not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries field-level validation messages for a rejected write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates an empty validation error ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors reports whether any field message was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Enums and types
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type TaskStatus string

const (
	TaskStatusHold       TaskStatus = "hold"
	TaskStatusBacklog    TaskStatus = "backlog"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusSprint     TaskStatus = "sprint"
	TaskStatusDaily      TaskStatus = "daily"
	TaskStatusDone       TaskStatus = "done"
)

// statusSequence is the fixed workflow order. Index position drives
// next/previous semantics; it is not alphabetical.
var statusSequence = []TaskStatus{
	TaskStatusHold,
	TaskStatusBacklog,
	TaskStatusInProgress,
	TaskStatusSprint,
	TaskStatusDaily,
	TaskStatusDone,
}

// DefaultTaskStatus is assigned when a task is created without a status.
const DefaultTaskStatus = TaskStatusBacklog

// StatusSequence returns a copy of the ordered workflow statuses.
func StatusSequence() []TaskStatus {
	seq := make([]TaskStatus, len(statusSequence))
	copy(seq, statusSequence)
	return seq
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is assigned when a task is created without a priority.
const DefaultPriority = PriorityMedium

type Assignee string

const (
	AssigneeSparky    Assignee = "sparky"
	AssigneeAssistant Assignee = "assistant"
)

// DormantAfter is how long a task may go untouched before it counts as dormant.
const DormantAfter = 7 * 24 * time.Hour

// User represents an account that can own tasks and act on them
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents a work item on the shared board
type Task struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	Assignee     Assignee   `json:"assignee" db:"assignee"`
	Status       TaskStatus `json:"status" db:"status"`
	Priority     Priority   `json:"priority" db:"priority"`
	Archived     bool       `json:"archived" db:"archived"`
	LastWorkedOn *time.Time `json:"last_worked_on" db:"last_worked_on"`
	OwnerUserID  *uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// QuickNote represents a scratchpad note with no workflow
type QuickNote struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Content     *string    `json:"content" db:"content"`
	OwnerUserID *uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// statusIndex returns the position of s in the workflow sequence, or -1
// if s is not a recognized status.
func statusIndex(s TaskStatus) int {
	for i, v := range statusSequence {
		if v == s {
			return i
		}
	}
	return -1
}

// NextStatus returns the status following the task's current one in the
// workflow sequence. The bool is false when the task is already at the
// terminal status or its current value is unrecognized.
func (t *Task) NextStatus() (TaskStatus, bool) {
	idx := statusIndex(t.Status)
	if idx < 0 || idx >= len(statusSequence)-1 {
		return "", false
	}
	return statusSequence[idx+1], true
}

// PreviousStatus mirrors NextStatus toward the start of the sequence.
func (t *Task) PreviousStatus() (TaskStatus, bool) {
	idx := statusIndex(t.Status)
	if idx <= 0 {
		return "", false
	}
	return statusSequence[idx-1], true
}

// IsDormant reports whether the task has not been worked on within DormantAfter.
func (t *Task) IsDormant(now time.Time) bool {
	if t.LastWorkedOn == nil {
		return true
	}
	return t.LastWorkedOn.Before(now.Add(-DormantAfter))
}

// Validate checks the task's invariant-guarded fields. It returns a
// ValidationError listing every violated field, or nil when the task is valid.
func (t *Task) Validate() *ValidationError {
	ve := NewValidationError()

	if strings.TrimSpace(t.Title) == "" {
		ve.Add("title", "title is required")
	}
	if !t.Assignee.IsValid() {
		ve.Add("assignee", fmt.Sprintf("assignee must be one of: %s", joinAssignees()))
	}
	if !t.Status.IsValid() {
		ve.Add("status", fmt.Sprintf("status must be one of: %s", joinStatuses()))
	}
	if !t.Priority.IsValid() {
		ve.Add("priority", fmt.Sprintf("priority must be one of: %s", joinPriorities()))
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func joinStatuses() string {
	parts := make([]string, len(statusSequence))
	for i, s := range statusSequence {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinPriorities() string {
	return strings.Join([]string{
		string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent),
	}, ", ")
}

func joinAssignees() string {
	return strings.Join([]string{string(AssigneeSparky), string(AssigneeAssistant)}, ", ")
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Utility methods
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleMember:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	return statusIndex(ts) >= 0
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

func (a Assignee) IsValid() bool {
	switch a {
	case AssigneeSparky, AssigneeAssistant:
		return true
	default:
		return false
	}
}
