package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSequenceOrder(t *testing.T) {
	expected := []TaskStatus{
		TaskStatusHold,
		TaskStatusBacklog,
		TaskStatusInProgress,
		TaskStatusSprint,
		TaskStatusDaily,
		TaskStatusDone,
	}
	assert.Equal(t, expected, StatusSequence())
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current TaskStatus
		want    TaskStatus
		ok      bool
	}{
		{"hold advances to backlog", TaskStatusHold, TaskStatusBacklog, true},
		{"backlog advances to in_progress", TaskStatusBacklog, TaskStatusInProgress, true},
		{"in_progress advances to sprint", TaskStatusInProgress, TaskStatusSprint, true},
		{"sprint advances to daily", TaskStatusSprint, TaskStatusDaily, true},
		{"daily advances to done", TaskStatusDaily, TaskStatusDone, true},
		{"done is terminal", TaskStatusDone, "", false},
		{"unknown status has no successor", TaskStatus("bogus"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Status: tt.current}
			got, ok := task.NextStatus()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreviousStatus(t *testing.T) {
	tests := []struct {
		name    string
		current TaskStatus
		want    TaskStatus
		ok      bool
	}{
		{"hold has no predecessor", TaskStatusHold, "", false},
		{"backlog regresses to hold", TaskStatusBacklog, TaskStatusHold, true},
		{"done regresses to daily", TaskStatusDone, TaskStatusDaily, true},
		{"unknown status has no predecessor", TaskStatus("bogus"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Status: tt.current}
			got, ok := task.PreviousStatus()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvanceFromHoldReachesDoneInFiveSteps(t *testing.T) {
	task := &Task{Status: TaskStatusHold}

	for i := 0; i < 5; i++ {
		next, ok := task.NextStatus()
		require.True(t, ok, "step %d should advance", i)
		task.Status = next
	}

	assert.Equal(t, TaskStatusDone, task.Status)

	_, ok := task.NextStatus()
	assert.False(t, ok)
}

func TestTaskValidate(t *testing.T) {
	valid := &Task{
		Title:    "Fix the build",
		Assignee: AssigneeSparky,
		Status:   TaskStatusBacklog,
		Priority: PriorityMedium,
	}
	assert.Nil(t, valid.Validate())

	t.Run("collects every violated field", func(t *testing.T) {
		task := &Task{
			Title:    "   ",
			Assignee: Assignee("nobody"),
			Status:   TaskStatus("limbo"),
			Priority: Priority("extreme"),
		}

		ve := task.Validate()
		require.NotNil(t, ve)
		assert.Len(t, ve.Fields, 4)
		assert.Contains(t, ve.Fields, "title")
		assert.Contains(t, ve.Fields, "assignee")
		assert.Contains(t, ve.Fields, "status")
		assert.Contains(t, ve.Fields, "priority")
	})

	t.Run("blank title alone is rejected", func(t *testing.T) {
		task := &Task{
			Title:    "",
			Assignee: AssigneeAssistant,
			Status:   TaskStatusDaily,
			Priority: PriorityUrgent,
		}

		ve := task.Validate()
		require.NotNil(t, ve)
		assert.Len(t, ve.Fields, 1)
		assert.Contains(t, ve.Fields, "title")
	})
}

func TestIsDormant(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastWorkedOn *time.Time
		want         bool
	}{
		{"never worked on", nil, true},
		{"worked on yesterday", ptrTime(now.Add(-24 * time.Hour)), false},
		{"worked on exactly seven days ago", ptrTime(now.Add(-DormantAfter)), false},
		{"worked on eight days ago", ptrTime(now.Add(-8 * 24 * time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{LastWorkedOn: tt.lastWorkedOn}
			assert.Equal(t, tt.want, task.IsDormant(now))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TaskStatusHold.IsValid())
	assert.True(t, TaskStatusDone.IsValid())
	assert.False(t, TaskStatus("archived").IsValid())

	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityUrgent.IsValid())
	assert.False(t, Priority("critical").IsValid())

	assert.True(t, AssigneeSparky.IsValid())
	assert.True(t, AssigneeAssistant.IsValid())
	assert.False(t, Assignee("").IsValid())

	assert.True(t, UserRoleAdmin.IsValid())
	assert.True(t, UserRoleMember.IsValid())
	assert.False(t, UserRole("root").IsValid())
}

func TestValidationErrorMessage(t *testing.T) {
	ve := NewValidationError()
	assert.Equal(t, "validation failed", ve.Error())
	assert.False(t, ve.HasErrors())

	ve.Add("title", "title is required")
	ve.Add("status", "status must be one of: hold, backlog, in_progress, sprint, daily, done")

	assert.True(t, ve.HasErrors())
	assert.Equal(t, "validation failed: status: status must be one of: hold, backlog, in_progress, sprint, daily, done; title: title is required", ve.Error())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: UserRoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: UserRoleMember}).IsAdmin())
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
