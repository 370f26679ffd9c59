package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupNoteMock(t *testing.T) (*PostgresNoteRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresNoteRepository(db)
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func TestListNotes_NewestFirst(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "lead_id", "content", "created_at", "user_id"}).
		AddRow(int64(2), int64(7), "second", now, "owner1").
		AddRow(int64(1), int64(7), "first", now.Add(-time.Hour), "owner1")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, lead_id, content, created_at, user_id FROM notes`)).
		WithArgs("owner1", int64(7)).
		WillReturnRows(rows)

	notes, err := repo.ListNotes(context.Background(), "owner1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 || notes[0].Content != "second" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

func TestAddNote_Success(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notes (lead_id, content, user_id) VALUES ($1, $2, $3)`)).
		WithArgs(int64(7), "called, call again monday", "owner1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.AddNote(context.Background(), "owner1", 7, "called, call again monday"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteNote_Success(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE user_id = $1 AND id = $2`)).
		WithArgs("owner1", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteNote(context.Background(), "owner1", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
