package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies a single audit record on a task
type ActivityType string

const (
	ActivityCreated            ActivityType = "created"
	ActivityUpdated            ActivityType = "updated"
	ActivityStatusChanged      ActivityType = "status_changed"
	ActivityAssigneeChanged    ActivityType = "assignee_changed"
	ActivityPriorityChanged    ActivityType = "priority_changed"
	ActivityTitleChanged       ActivityType = "title_changed"
	ActivityDescriptionChanged ActivityType = "description_changed"
	ActivityDeleted            ActivityType = "deleted"
	ActivityMoved              ActivityType = "moved"
	ActivityArchived           ActivityType = "archived"
	ActivityRestored           ActivityType = "restored"
)

func (at ActivityType) IsValid() bool {
	switch at {
	case ActivityCreated, ActivityUpdated, ActivityStatusChanged, ActivityAssigneeChanged,
		ActivityPriorityChanged, ActivityTitleChanged, ActivityDescriptionChanged,
		ActivityDeleted, ActivityMoved, ActivityArchived, ActivityRestored:
		return true
	default:
		return false
	}
}

// FieldChange records the old and new value of one field in a single write.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Changeset maps field names to their old/new values for a single write.
// It is stored on the activity record as JSONB.
type Changeset map[string]FieldChange

// Value implements driver.Valuer for JSONB storage.
func (c Changeset) Value() (driver.Value, error) {
	if c == nil {
		c = Changeset{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal changeset: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner for JSONB storage.
func (c *Changeset) Scan(src interface{}) error {
	if src == nil {
		*c = Changeset{}
		return nil
	}

	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported changeset source type %T", src)
	}

	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("failed to unmarshal changeset: %w", err)
	}
	return nil
}

// TaskActivity is an immutable audit record owned by exactly one task.
// Records are appended on change and never updated or deleted, except by
// cascading with their parent task row.
type TaskActivity struct {
	ID           int64        `json:"id" db:"id"`
	TaskID       int64        `json:"task_id" db:"task_id"`
	ActivityType ActivityType `json:"activity_type" db:"activity_type"`
	Description  string       `json:"description" db:"description"`
	Changeset    Changeset    `json:"changeset" db:"changeset"`
	ActorID      *uuid.UUID   `json:"actor_id" db:"actor_id"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// activityFieldOrder fixes both the type-selection priority and the order of
// description clauses. A write touching several fields is classified by the
// first changed field in this list.
var activityFieldOrder = []struct {
	field string
	typ   ActivityType
	label string
	// echoValues controls whether old/new values appear in the description.
	// Title and description are free text, so their values are not echoed.
	echoValues bool
}{
	{"status", ActivityStatusChanged, "Status", true},
	{"assignee", ActivityAssigneeChanged, "Assignee", true},
	{"priority", ActivityPriorityChanged, "Priority", true},
	{"title", ActivityTitleChanged, "Title", false},
	{"description", ActivityDescriptionChanged, "Description", false},
}

// DeriveActivity converts a changeset into the activity type and description
// for a single audit record. The bool is false when the changeset is empty,
// meaning no record should be written.
func DeriveActivity(changes Changeset) (ActivityType, string, bool) {
	if len(changes) == 0 {
		return "", "", false
	}

	activityType := ActivityUpdated
	var clauses []string

	for _, f := range activityFieldOrder {
		change, ok := changes[f.field]
		if !ok {
			continue
		}
		if activityType == ActivityUpdated {
			activityType = f.typ
		}
		if f.echoValues {
			clauses = append(clauses, fmt.Sprintf("%s changed from '%s' to '%s'", f.label, change.From, change.To))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s updated", f.label))
		}
	}

	description := "Task updated"
	if len(clauses) > 0 {
		description = strings.Join(clauses, ", ")
	}

	return activityType, description, true
}

// DeriveCreated builds the dedicated creation record description.
func DeriveCreated(task *Task) string {
	return fmt.Sprintf("Task created with status '%s' and priority '%s'", task.Status, task.Priority)
}

// DeriveDeleted builds the dedicated deletion record description.
func DeriveDeleted(task *Task) string {
	return fmt.Sprintf("Task '%s' deleted", task.Title)
}

// DeriveArchived builds the dedicated archive record description. An empty
// actor name is reported as "system".
func DeriveArchived(actorName string) string {
	return fmt.Sprintf("Task archived by %s", actorOrSystem(actorName))
}

// DeriveRestored mirrors DeriveArchived for the restore transition.
func DeriveRestored(actorName string) string {
	return fmt.Sprintf("Task restored by %s", actorOrSystem(actorName))
}

func actorOrSystem(name string) string {
	if strings.TrimSpace(name) == "" {
		return "system"
	}
	return name
}

// DiffTasks computes the changeset between two task snapshots over the
// tracked fields. Fields outside the tracked set never appear.
func DiffTasks(before, after *Task) Changeset {
	changes := Changeset{}

	if before.Status != after.Status {
		changes["status"] = FieldChange{From: string(before.Status), To: string(after.Status)}
	}
	if before.Assignee != after.Assignee {
		changes["assignee"] = FieldChange{From: string(before.Assignee), To: string(after.Assignee)}
	}
	if before.Priority != after.Priority {
		changes["priority"] = FieldChange{From: string(before.Priority), To: string(after.Priority)}
	}
	if before.Title != after.Title {
		changes["title"] = FieldChange{From: before.Title, To: after.Title}
	}
	if derefString(before.Description) != derefString(after.Description) {
		changes["description"] = FieldChange{From: derefString(before.Description), To: derefString(after.Description)}
	}

	return changes
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
