package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

func TestTaskFilterClauses(t *testing.T) {
	t.Run("zero filter excludes archived rows", func(t *testing.T) {
		conditions, args := taskFilterClauses(ports.TaskFilter{})
		require.Equal(t, []string{"archived = FALSE"}, conditions)
		assert.Empty(t, args)
	})

	t.Run("archived mode selects archived rows only", func(t *testing.T) {
		conditions, _ := taskFilterClauses(ports.TaskFilter{ArchiveMode: ports.ArchiveModeArchived})
		assert.Equal(t, []string{"archived = TRUE"}, conditions)
	})

	t.Run("all mode adds no archive condition", func(t *testing.T) {
		conditions, args := taskFilterClauses(ports.TaskFilter{ArchiveMode: ports.ArchiveModeAll})
		assert.Empty(t, conditions)
		assert.Empty(t, args)
	})

	t.Run("predicates compose under the archive condition", func(t *testing.T) {
		assignee := entities.AssigneeSparky
		status := entities.TaskStatusSprint
		priority := entities.PriorityHigh

		conditions, args := taskFilterClauses(ports.TaskFilter{
			Assignee: &assignee,
			Status:   &status,
			Priority: &priority,
		})

		require.Equal(t, []string{
			"archived = FALSE",
			"assignee = $1",
			"status = $2",
			"priority = $3",
		}, conditions)
		assert.Equal(t, []interface{}{assignee, status, priority}, args)
	})

	t.Run("dormant predicate covers never-worked and stale tasks", func(t *testing.T) {
		conditions, args := taskFilterClauses(ports.TaskFilter{Dormant: true})
		require.Len(t, conditions, 2)
		assert.Equal(t, "(last_worked_on IS NULL OR last_worked_on < NOW() - INTERVAL '7 days')", conditions[1])
		assert.Empty(t, args)
	})
}

func TestTaskOrderBy(t *testing.T) {
	assert.Equal(t, "updated_at DESC", taskOrderBy(ports.TaskSortRecent))
	assert.Equal(t, "updated_at DESC", taskOrderBy(""))
	assert.Equal(t, "last_worked_on DESC NULLS LAST", taskOrderBy(ports.TaskSortLastWorked))
}
