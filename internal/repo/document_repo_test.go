package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

func docRow(id, userID, title string) *sqlmock.Rows {
	return sqlmock.NewRows(documentFields).
		AddRow(id, userID, "", title, "{}", "draft", "", 0, 0, DocumentStateNormal, 100, 100)
}

func TestGetByIDScopesToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(docRow("d1", "u1", "my doc"))

	repo := NewDocumentRepo(db)
	doc, err := repo.GetByID(context.Background(), "u1", "d1")
	require.NoError(t, err)
	require.Equal(t, "d1", doc.ID)
	require.Equal(t, "my doc", doc.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentFields))

	repo := NewDocumentRepo(db)
	_, err = repo.GetByID(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashUnknownDocReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewDocumentRepo(db)
	err = repo.Trash(context.Background(), "u1", "missing", 200)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUpdateLocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM documents WHERE .+ FOR UPDATE").
		WithArgs("d1", "u1", DocumentStateNormal).
		WillReturnRows(docRow("d1", "u1", "locked"))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewDocumentRepo(db)
	doc, err := repo.GetByIDForUpdateTx(context.Background(), tx, "u1", "d1")
	require.NoError(t, err)
	require.Equal(t, "locked", doc.Title)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
