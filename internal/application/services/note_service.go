package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// NoteService handles the quick-note scratchpad. Notes have no workflow and
// no audit trail.
type NoteService struct {
	noteRepo ports.NoteRepository
	logger   *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo ports.NoteRepository, logger *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// CreateNote creates a new quick note owned by the actor.
func (s *NoteService) CreateNote(ctx context.Context, req ports.CreateNoteRequest, actor *entities.User) (*entities.QuickNote, error) {
	if strings.TrimSpace(req.Title) == "" {
		ve := entities.NewValidationError()
		ve.Add("title", "title is required")
		return nil, ve
	}

	note := &entities.QuickNote{
		Title:       req.Title,
		Content:     req.Content,
		OwnerUserID: actorID(actor),
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Infow("Note created", "note_id", created.ID, "title", created.Title)

	return created, nil
}

// GetNote retrieves a note by ID
func (s *NoteService) GetNote(ctx context.Context, id int64) (*entities.QuickNote, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// UpdateNote updates a note's title and content.
func (s *NoteService) UpdateNote(ctx context.Context, id int64, req ports.UpdateNoteRequest) (*entities.QuickNote, error) {
	existing, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			ve := entities.NewValidationError()
			ve.Add("title", "title is required")
			return nil, ve
		}
		existing.Title = *req.Title
	}
	if req.Content != nil {
		existing.Content = req.Content
	}

	updated, err := s.noteRepo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.logger.Infow("Note updated", "note_id", updated.ID)

	return updated, nil
}

// DeleteNote removes a note. Notes are plain rows; there is no archive state.
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Note deleted", "note_id", id)

	return nil
}

// ListNotes retrieves notes with filtering and pagination
func (s *NoteService) ListNotes(ctx context.Context, filter ports.NoteFilter) ([]*entities.QuickNote, error) {
	notes, err := s.noteRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}
