package service

import (
	"context"
	"fmt"

	"github.com/AdReachMedia/LeadGen-CRM/internal/cache"
	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

// NoteRepository defines the persistence operations needed by the NoteService.
type NoteRepository interface {
	// ListNotes returns the owner's notes for one lead, newest first.
	ListNotes(ctx context.Context, ownerID string, leadID int64) ([]models.Note, error)
	// AddNote appends a note to the owner's lead.
	AddNote(ctx context.Context, ownerID string, leadID int64, content string) error
	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, ownerID string, id int64) error
}

// NoteService implements the append-only note log per lead.
type NoteService struct {
	repo  NoteRepository
	cache *cache.Cache
}

// NewNoteService constructs a NoteService.
func NewNoteService(repo NoteRepository, c *cache.Cache) *NoteService {
	return &NoteService{repo: repo, cache: c}
}

// ListNotes returns the lead's notes, newest first.
func (s *NoteService) ListNotes(ctx context.Context, ownerID string, leadID int64) ([]models.Note, error) {
	if ownerID == "" {
		return nil, nil
	}
	key := fmt.Sprintf("notes:%s:%d", ownerID, leadID)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Note), nil
	}
	notes, err := s.repo.ListNotes(ctx, ownerID, leadID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, notes)
	return notes, nil
}

// AddNote appends a note. The content is required.
func (s *NoteService) AddNote(ctx context.Context, ownerID string, leadID int64, content string) error {
	if content == "" {
		return models.NewValidationError("content", "must not be empty")
	}
	if ownerID == "" {
		return nil
	}
	if err := s.repo.AddNote(ctx, ownerID, leadID, content); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

// DeleteNote removes a note permanently.
func (s *NoteService) DeleteNote(ctx context.Context, ownerID string, id int64) error {
	if ownerID == "" {
		return nil
	}
	if err := s.repo.DeleteNote(ctx, ownerID, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
