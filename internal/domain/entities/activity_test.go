package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveActivity(t *testing.T) {
	tests := []struct {
		name     string
		changes  Changeset
		wantType ActivityType
		wantDesc string
		wantOK   bool
	}{
		{
			name:    "empty changeset writes nothing",
			changes: Changeset{},
			wantOK:  false,
		},
		{
			name: "status only",
			changes: Changeset{
				"status": {From: "backlog", To: "in_progress"},
			},
			wantType: ActivityStatusChanged,
			wantDesc: "Status changed from 'backlog' to 'in_progress'",
			wantOK:   true,
		},
		{
			name: "assignee only",
			changes: Changeset{
				"assignee": {From: "sparky", To: "assistant"},
			},
			wantType: ActivityAssigneeChanged,
			wantDesc: "Assignee changed from 'sparky' to 'assistant'",
			wantOK:   true,
		},
		{
			name: "priority only",
			changes: Changeset{
				"priority": {From: "medium", To: "urgent"},
			},
			wantType: ActivityPriorityChanged,
			wantDesc: "Priority changed from 'medium' to 'urgent'",
			wantOK:   true,
		},
		{
			name: "title does not echo values",
			changes: Changeset{
				"title": {From: "old name", To: "new name"},
			},
			wantType: ActivityTitleChanged,
			wantDesc: "Title updated",
			wantOK:   true,
		},
		{
			name: "description does not echo values",
			changes: Changeset{
				"description": {From: "", To: "some text"},
			},
			wantType: ActivityDescriptionChanged,
			wantDesc: "Description updated",
			wantOK:   true,
		},
		{
			name: "status outranks priority and title",
			changes: Changeset{
				"title":    {From: "a", To: "b"},
				"priority": {From: "low", To: "high"},
				"status":   {From: "sprint", To: "daily"},
			},
			wantType: ActivityStatusChanged,
			wantDesc: "Status changed from 'sprint' to 'daily', Priority changed from 'low' to 'high', Title updated",
			wantOK:   true,
		},
		{
			name: "assignee outranks priority",
			changes: Changeset{
				"priority": {From: "low", To: "high"},
				"assignee": {From: "assistant", To: "sparky"},
			},
			wantType: ActivityAssigneeChanged,
			wantDesc: "Assignee changed from 'assistant' to 'sparky', Priority changed from 'low' to 'high'",
			wantOK:   true,
		},
		{
			name: "only unrecognized fields fall back to generic record",
			changes: Changeset{
				"color": {From: "red", To: "blue"},
			},
			wantType: ActivityUpdated,
			wantDesc: "Task updated",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activityType, description, ok := DeriveActivity(tt.changes)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantType, activityType)
			assert.Equal(t, tt.wantDesc, description)
		})
	}
}

func TestDeriveCreated(t *testing.T) {
	task := &Task{Status: TaskStatusBacklog, Priority: PriorityMedium}
	assert.Equal(t, "Task created with status 'backlog' and priority 'medium'", DeriveCreated(task))
}

func TestDeriveDeleted(t *testing.T) {
	task := &Task{Title: "Clean the attic"}
	assert.Equal(t, "Task 'Clean the attic' deleted", DeriveDeleted(task))
}

func TestDeriveArchivedAndRestored(t *testing.T) {
	assert.Equal(t, "Task archived by Sparky", DeriveArchived("Sparky"))
	assert.Equal(t, "Task restored by Sparky", DeriveRestored("Sparky"))

	// No actor falls back to "system".
	assert.Equal(t, "Task archived by system", DeriveArchived(""))
	assert.Equal(t, "Task restored by system", DeriveRestored("   "))
}

func TestDiffTasks(t *testing.T) {
	before := &Task{
		Title:    "Write report",
		Assignee: AssigneeSparky,
		Status:   TaskStatusBacklog,
		Priority: PriorityMedium,
	}

	t.Run("identical snapshots produce no changes", func(t *testing.T) {
		after := *before
		assert.Empty(t, DiffTasks(before, &after))
	})

	t.Run("tracked fields are diffed with old and new values", func(t *testing.T) {
		after := *before
		after.Status = TaskStatusInProgress
		after.Priority = PriorityHigh

		changes := DiffTasks(before, &after)
		require.Len(t, changes, 2)
		assert.Equal(t, FieldChange{From: "backlog", To: "in_progress"}, changes["status"])
		assert.Equal(t, FieldChange{From: "medium", To: "high"}, changes["priority"])
	})

	t.Run("nil and empty description are equivalent", func(t *testing.T) {
		empty := ""
		after := *before
		after.Description = &empty

		assert.Empty(t, DiffTasks(before, &after))
	})

	t.Run("description change is tracked", func(t *testing.T) {
		text := "new details"
		after := *before
		after.Description = &text

		changes := DiffTasks(before, &after)
		require.Len(t, changes, 1)
		assert.Equal(t, FieldChange{From: "", To: "new details"}, changes["description"])
	})

	t.Run("archived flag is not a tracked field", func(t *testing.T) {
		after := *before
		after.Archived = true

		assert.Empty(t, DiffTasks(before, &after))
	})
}

func TestChangesetScan(t *testing.T) {
	var c Changeset
	err := c.Scan([]byte(`{"status":{"from":"hold","to":"backlog"}}`))
	require.NoError(t, err)
	assert.Equal(t, FieldChange{From: "hold", To: "backlog"}, c["status"])

	var empty Changeset
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
