package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// NoteService owns note creation, listing and owner-scoped mutation.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// ParseTags splits a comma-separated tag string, trims each tag and drops
// empty ones.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func normalize(title, body, tagsCSV, category string) (models.NoteFields, error) {
	f := models.NoteFields{
		Title:    strings.TrimSpace(title),
		Body:     body,
		Tags:     ParseTags(tagsCSV),
		Category: strings.TrimSpace(category),
	}
	if f.Title == "" {
		return f, common.ErrInvalidInput
	}
	return f, nil
}

// Create allocates the owner's next sequence number and stores the note in
// one transaction, so a failed insert does not consume a number.
func (s *NoteService) Create(ctx context.Context, ownerID, title, body, tagsCSV, category string) (*models.Note, error) {
	fields, err := normalize(title, body, tagsCSV, category)
	if err != nil {
		return nil, err
	}

	var note *models.Note
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		seq, err := s.repomanager.Counters(tx).Next(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("error allocating note number: %w", err)
		}

		note, err = s.repomanager.Notes(tx).Create(ctx, &models.Note{
			OwnerID:  ownerID,
			Seq:      seq,
			Title:    fields.Title,
			Body:     fields.Body,
			Tags:     fields.Tags,
			Category: fields.Category,
		})
		if err != nil {
			return fmt.Errorf("error creating note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListFor returns the owner's notes, newest number first.
func (s *NoteService) ListFor(ctx context.Context, ownerID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByOwner(ctx, ownerID)
}

// Get returns a note for editing. common.ErrNotOwned and
// common.ErrorNotFound pass through unchanged.
func (s *NoteService) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).GetOwned(ctx, id, ownerID)
}

// Update rewrites an owned note. Ownership is resolved before input
// errors are reported, so a missing or foreign note never yields
// common.ErrInvalidInput.
func (s *NoteService) Update(ctx context.Context, id, ownerID, title, body, tagsCSV, category string) error {
	fields, err := normalize(title, body, tagsCSV, category)
	if err != nil {
		if _, gerr := s.Get(ctx, id, ownerID); gerr != nil {
			return gerr
		}
		return err
	}
	return s.repomanager.Notes(s.db).Update(ctx, id, ownerID, fields)
}

func (s *NoteService) Delete(ctx context.Context, id, ownerID string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, id, ownerID)
}

// LastIssued returns the highest sequence number ever issued to owner,
// deleted notes included.
func (s *NoteService) LastIssued(ctx context.Context, ownerID string) (int64, error) {
	return s.repomanager.Counters(s.db).Current(ctx, ownerID)
}

// ListAll is the administrator view over every owner's notes.
func (s *NoteService) ListAll(ctx context.Context) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListAll(ctx)
}

// IsOwnershipMiss reports whether err means the note is missing or
// belongs to someone else.
func IsOwnershipMiss(err error) bool {
	return errors.Is(err, common.ErrNotOwned) || errors.Is(err, common.ErrorNotFound)
}
