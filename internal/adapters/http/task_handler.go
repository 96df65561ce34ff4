package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskHandler handles board requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles getting a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles a tracked task update
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// AdvanceTask moves a task one workflow step forward
func (h *TaskHandler) AdvanceTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.AdvanceTask(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// RegressTask moves a task one workflow step backward
func (h *TaskHandler) RegressTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.RegressTask(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// ArchiveTask handles the user-facing delete action, which archives rather
// than destroys.
func (h *TaskHandler) ArchiveTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ArchiveTask(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// RestoreTask brings an archived task back to the board
func (h *TaskHandler) RestoreTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.RestoreTask(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// TouchTask marks a task as worked on right now
func (h *TaskHandler) TouchTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.TouchTask(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// BackdateTask sets last_worked_on to a caller-supplied time. Admin only.
func (h *TaskHandler) BackdateTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	var req ports.BackdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.BackdateTask(c.Request().Context(), id, req.LastWorkedOn, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// HardDeleteTask physically removes a task. Admin only.
func (h *TaskHandler) HardDeleteTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id, actorFromContext(c)); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted"})
}

// ListTasks handles a filtered, ordered task listing
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter, err := taskFilterFromQuery(c)
	if err != nil {
		return err
	}

	tasks, total, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, ports.PaginatedResponse[*entities.Task]{
		Data:   tasks,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetActivities returns a task's audit records newest-first
func (h *TaskHandler) GetActivities(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
	}

	activities, err := h.taskService.RecentActivities(c.Request().Context(), id, limit)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, activities)
}

func parseTaskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}
	return id, nil
}

// taskFilterFromQuery builds the listing filter from query parameters,
// rejecting values outside the closed vocabularies.
func taskFilterFromQuery(c echo.Context) (ports.TaskFilter, error) {
	var filter ports.TaskFilter

	if v := c.QueryParam("assignee"); v != "" {
		assignee := entities.Assignee(v)
		if !assignee.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid assignee")
		}
		filter.Assignee = &assignee
	}

	if v := c.QueryParam("status"); v != "" {
		status := entities.TaskStatus(v)
		if !status.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		filter.Status = &status
	}

	if v := c.QueryParam("priority"); v != "" {
		priority := entities.Priority(v)
		if !priority.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid priority")
		}
		filter.Priority = &priority
	}

	switch v := c.QueryParam("archive"); v {
	case "", string(ports.ArchiveModeActive):
		filter.ArchiveMode = ports.ArchiveModeActive
	case string(ports.ArchiveModeArchived):
		filter.ArchiveMode = ports.ArchiveModeArchived
	case string(ports.ArchiveModeAll):
		filter.ArchiveMode = ports.ArchiveModeAll
	default:
		return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid archive mode")
	}

	switch v := c.QueryParam("sort"); v {
	case "", string(ports.TaskSortRecent):
		filter.Sort = ports.TaskSortRecent
	case string(ports.TaskSortLastWorked):
		filter.Sort = ports.TaskSortLastWorked
	default:
		return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid sort")
	}

	filter.Dormant = c.QueryParam("dormant") == "true"

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		filter.Limit = limit
	}

	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

// mapServiceError converts core errors into HTTP responses: not-found
// sentinels become 404, validation failures 422 with field messages,
// authorization failures 403.
func mapServiceError(err error) error {
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ports.ErrorResponse{
			Message: "validation failed",
			Fields:  ve.Fields,
		})
	}

	switch {
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	default:
		return err
	}
}
