package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

func TestCreateNextTxAssignsNextNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO document_versions").
		WillReturnRows(sqlmock.NewRows([]string{"version_number"}).AddRow(4))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewVersionRepo(db)
	ver := &model.DocumentVersion{
		ID:         "v1",
		DocumentID: "d1",
		Title:      "title",
		Content:    "{}",
		CreatedBy:  "u1",
		Ctime:      100,
	}
	require.NoError(t, repo.CreateNextTx(context.Background(), tx, ver))
	require.Equal(t, 4, ver.VersionNumber)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNextTxUniqueViolationMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO document_versions").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewVersionRepo(db)
	err = repo.CreateNextTx(context.Background(), tx, &model.DocumentVersion{ID: "v1", DocumentID: "d1"})
	require.ErrorIs(t, err, appErr.ErrConflict)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM document_versions").
		WillReturnRows(sqlmock.NewRows(versionFields))

	repo := NewVersionRepo(db)
	_, err = repo.GetByID(context.Background(), "d1", "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAnnotationNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE document_versions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVersionRepo(db)
	err = repo.UpdateAnnotation(context.Background(), "d1", "missing", "note")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
