package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskboard/core/internal/domain/entities"
)

// ActivityRepository implements the append-only audit trail. Records are
// inserted and read, never updated or deleted; the schema cascades them with
// their parent task row.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends one activity record
func (r *ActivityRepository) Create(ctx context.Context, activity *entities.TaskActivity) (*entities.TaskActivity, error) {
	query := `
		INSERT INTO task_activities (task_id, activity_type, description, changeset, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		activity.TaskID,
		activity.ActivityType,
		activity.Description,
		activity.Changeset,
		activity.ActorID,
	).Scan(&activity.ID, &activity.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

// ListByTask returns a task's activities newest-first.
func (r *ActivityRepository) ListByTask(ctx context.Context, taskID int64, limit int) ([]*entities.TaskActivity, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, task_id, activity_type, description, changeset, actor_id, created_at
		FROM task_activities
		WHERE task_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*entities.TaskActivity
	for rows.Next() {
		var activity entities.TaskActivity
		err := rows.Scan(
			&activity.ID,
			&activity.TaskID,
			&activity.ActivityType,
			&activity.Description,
			&activity.Changeset,
			&activity.ActorID,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return activities, nil
}
