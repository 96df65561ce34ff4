package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

const noteColumns = "id, title, content, owner_user_id, created_at, updated_at"

// NoteRepository implements the quick note repository interface
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new quick note
func (r *NoteRepository) Create(ctx context.Context, note *entities.QuickNote) (*entities.QuickNote, error) {
	query := `
		INSERT INTO quick_notes (title, content, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		note.Title,
		note.Content,
		note.OwnerUserID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.QuickNote, error) {
	query := fmt.Sprintf("SELECT %s FROM quick_notes WHERE id = $1", noteColumns)

	var note entities.QuickNote
	err := r.db.GetContext(ctx, &note, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// Update updates a note's title and content
func (r *NoteRepository) Update(ctx context.Context, note *entities.QuickNote) (*entities.QuickNote, error) {
	query := fmt.Sprintf(`
		UPDATE quick_notes
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, noteColumns)

	var updated entities.QuickNote
	err := r.db.GetContext(ctx, &updated, query, note.ID, note.Title, note.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &updated, nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM quick_notes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

// List retrieves notes with filtering and pagination
func (r *NoteRepository) List(ctx context.Context, filter ports.NoteFilter) ([]*entities.QuickNote, error) {
	var conditions []string
	var args []interface{}

	if filter.OwnerUserID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_user_id = $%d", len(args)+1))
		args = append(args, *filter.OwnerUserID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s FROM quick_notes %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, noteColumns, whereClause, len(args)+1, len(args)+2)

	args = append(args, limit, filter.Offset)

	var notes []*entities.QuickNote
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}
