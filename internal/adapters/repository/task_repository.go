package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

const taskColumns = "id, title, description, assignee, status, priority, archived, last_worked_on, owner_user_id, created_at, updated_at"

// TaskRepository implements the task repository interface
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (title, description, assignee, status, priority, archived, last_worked_on, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Assignee,
		task.Status,
		task.Priority,
		task.Archived,
		task.LastWorkedOn,
		task.OwnerUserID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update persists a tracked write of the task's mutable fields in a single
// statement.
func (r *TaskRepository) Update(ctx context.Context, id int64, update ports.TaskUpdate) (*entities.Task, error) {
	query := fmt.Sprintf(`
		UPDATE tasks
		SET title = $2, description = $3, assignee = $4, status = $5, priority = $6, last_worked_on = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query,
		id,
		update.Title,
		update.Description,
		update.Assignee,
		update.Status,
		update.Priority,
		update.LastWorkedOn,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetArchived flips only the archived flag. No other column is written, so
// the write succeeds regardless of the row's field state and the round trip
// archive/restore leaves every other column untouched.
func (r *TaskRepository) SetArchived(ctx context.Context, id int64, archived bool) (*entities.Task, error) {
	query := fmt.Sprintf("UPDATE tasks SET archived = $2 WHERE id = $1 RETURNING %s", taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, archived))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to set archived flag: %w", err)
	}

	return task, nil
}

// SetLastWorkedOn writes only the last_worked_on timestamp.
func (r *TaskRepository) SetLastWorkedOn(ctx context.Context, id int64, at *time.Time) (*entities.Task, error) {
	query := fmt.Sprintf("UPDATE tasks SET last_worked_on = $2, updated_at = NOW() WHERE id = $1 RETURNING %s", taskColumns)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to set last_worked_on: %w", err)
	}

	return task, nil
}

// Delete physically removes a task row. Activities cascade at the schema
// level.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// List retrieves tasks with filtering and pagination
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, int, error) {
	conditions, args := taskFilterClauses(filter)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tasks %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, taskColumns, whereClause, taskOrderBy(filter.Sort), len(args)+1, len(args)+2)

	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, total, nil
}

// taskFilterClauses builds the WHERE conditions for a task listing. The
// archive mode always contributes a condition unless the caller asked for
// all rows, so archived tasks stay invisible underneath every other filter.
func taskFilterClauses(filter ports.TaskFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	switch filter.ArchiveMode {
	case ports.ArchiveModeArchived:
		conditions = append(conditions, "archived = TRUE")
	case ports.ArchiveModeAll:
		// no condition
	default:
		conditions = append(conditions, "archived = FALSE")
	}

	if filter.Assignee != nil {
		conditions = append(conditions, fmt.Sprintf("assignee = $%d", argIndex))
		args = append(args, *filter.Assignee)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIndex))
		args = append(args, *filter.Priority)
		argIndex++
	}

	if filter.Dormant {
		conditions = append(conditions, "(last_worked_on IS NULL OR last_worked_on < NOW() - INTERVAL '7 days')")
	}

	return conditions, args
}

// taskOrderBy maps a sort mode to its ORDER BY expression. Never-worked
// tasks sort after all worked-on tasks in last_worked mode.
func taskOrderBy(sort ports.TaskSort) string {
	switch sort {
	case ports.TaskSortLastWorked:
		return "last_worked_on DESC NULLS LAST"
	default:
		return "updated_at DESC"
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Assignee,
		&task.Status,
		&task.Priority,
		&task.Archived,
		&task.LastWorkedOn,
		&task.OwnerUserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
