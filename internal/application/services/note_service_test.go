package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

type fakeNoteRepo struct {
	notes  map[int64]*entities.QuickNote
	nextID int64
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[int64]*entities.QuickNote), nextID: 1}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entities.QuickNote) (*entities.QuickNote, error) {
	stored := *note
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.notes[stored.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id int64) (*entities.QuickNote, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	copy := *note
	return &copy, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entities.QuickNote) (*entities.QuickNote, error) {
	if _, ok := r.notes[note.ID]; !ok {
		return nil, entities.ErrNoteNotFound
	}
	stored := *note
	stored.UpdatedAt = time.Now()
	r.notes[note.ID] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) List(_ context.Context, filter ports.NoteFilter) ([]*entities.QuickNote, error) {
	var out []*entities.QuickNote
	for _, note := range r.notes {
		if filter.OwnerUserID != nil {
			if note.OwnerUserID == nil || *note.OwnerUserID != *filter.OwnerUserID {
				continue
			}
		}
		copy := *note
		out = append(out, &copy)
	}
	return out, nil
}

func newTestNoteService(t *testing.T) (*NoteService, *fakeNoteRepo) {
	t.Helper()
	repo := newFakeNoteRepo()
	return NewNoteService(repo, logger.NewNop()), repo
}

func TestCreateNote(t *testing.T) {
	svc, _ := newTestNoteService(t)
	actor := testActor()

	content := "remember the milk"
	note, err := svc.CreateNote(context.Background(), ports.CreateNoteRequest{
		Title:   "Groceries",
		Content: &content,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, "Groceries", note.Title)
	require.NotNil(t, note.Content)
	assert.Equal(t, content, *note.Content)
	require.NotNil(t, note.OwnerUserID)
	assert.Equal(t, actor.ID, *note.OwnerUserID)
}

func TestCreateNoteBlankTitle(t *testing.T) {
	svc, _ := newTestNoteService(t)

	_, err := svc.CreateNote(context.Background(), ports.CreateNoteRequest{Title: "   "}, testActor())

	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
}

func TestUpdateNote(t *testing.T) {
	svc, _ := newTestNoteService(t)
	note, err := svc.CreateNote(context.Background(), ports.CreateNoteRequest{Title: "Draft"}, testActor())
	require.NoError(t, err)

	title := "Final"
	updated, err := svc.UpdateNote(context.Background(), note.ID, ports.UpdateNoteRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)

	blank := ""
	_, err = svc.UpdateNote(context.Background(), note.ID, ports.UpdateNoteRequest{Title: &blank})
	var ve *entities.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestDeleteNote(t *testing.T) {
	svc, repo := newTestNoteService(t)
	note, err := svc.CreateNote(context.Background(), ports.CreateNoteRequest{Title: "Scratch"}, testActor())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNote(context.Background(), note.ID))
	assert.NotContains(t, repo.notes, note.ID)

	assert.ErrorIs(t, svc.DeleteNote(context.Background(), note.ID), entities.ErrNoteNotFound)
}
