package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

func newQueryContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestTaskFilterFromQuery(t *testing.T) {
	t.Run("empty query yields the default filter", func(t *testing.T) {
		filter, err := taskFilterFromQuery(newQueryContext(t, ""))
		require.NoError(t, err)

		assert.Nil(t, filter.Assignee)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Priority)
		assert.Equal(t, ports.ArchiveModeActive, filter.ArchiveMode)
		assert.Equal(t, ports.TaskSortRecent, filter.Sort)
		assert.False(t, filter.Dormant)
	})

	t.Run("all predicates parse", func(t *testing.T) {
		filter, err := taskFilterFromQuery(newQueryContext(t,
			"assignee=sparky&status=sprint&priority=high&archive=all&sort=last_worked&dormant=true&limit=10&offset=20"))
		require.NoError(t, err)

		require.NotNil(t, filter.Assignee)
		assert.Equal(t, entities.AssigneeSparky, *filter.Assignee)
		require.NotNil(t, filter.Status)
		assert.Equal(t, entities.TaskStatusSprint, *filter.Status)
		require.NotNil(t, filter.Priority)
		assert.Equal(t, entities.PriorityHigh, *filter.Priority)
		assert.Equal(t, ports.ArchiveModeAll, filter.ArchiveMode)
		assert.Equal(t, ports.TaskSortLastWorked, filter.Sort)
		assert.True(t, filter.Dormant)
		assert.Equal(t, 10, filter.Limit)
		assert.Equal(t, 20, filter.Offset)
	})

	t.Run("values outside the closed vocabularies are rejected", func(t *testing.T) {
		bad := []string{
			"assignee=nobody",
			"status=limbo",
			"priority=critical",
			"archive=deleted",
			"sort=alphabetical",
			"limit=0",
			"offset=-1",
		}

		for _, query := range bad {
			_, err := taskFilterFromQuery(newQueryContext(t, query))
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he, "query %q", query)
			assert.Equal(t, http.StatusBadRequest, he.Code, "query %q", query)
		}
	})
}

func TestMapServiceError(t *testing.T) {
	t.Run("validation errors map to 422 with field messages", func(t *testing.T) {
		ve := entities.NewValidationError()
		ve.Add("title", "title is required")

		err := mapServiceError(ve)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)

		resp, ok := he.Message.(ports.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, "title is required", resp.Fields["title"])
	})

	t.Run("not-found sentinels map to 404", func(t *testing.T) {
		for _, sentinel := range []error{
			entities.ErrTaskNotFound,
			entities.ErrNoteNotFound,
			entities.ErrUserNotFound,
		} {
			err := mapServiceError(sentinel)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusNotFound, he.Code)
		}
	})

	t.Run("authorization failures map to 403", func(t *testing.T) {
		err := mapServiceError(entities.ErrUnauthorized)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		assert.Equal(t, cause, mapServiceError(cause))
	})
}
