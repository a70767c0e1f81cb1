package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/repo"
)

var documentColumns = []string{
	"id", "user_id", "folder_id", "title", "content", "status",
	"published_content", "published_at", "pinned", "state", "ctime", "mtime",
}

var versionColumns = []string{
	"id", "document_id", "version_number", "title", "content", "annotation", "created_by", "ctime",
}

func newDocumentService(db *sqlmockDB) *DocumentService {
	return NewDocumentService(db.db,
		repo.NewDocumentRepo(db.db),
		repo.NewVersionRepo(db.db),
		repo.NewFolderRepo(db.db),
		repo.NewTagRepo(db.db),
		repo.NewUserRepo(db.db),
	)
}

func TestPublishSnapshotsCurrentContent(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectBegin()
	mockDB.mock.ExpectQuery("FROM documents WHERE .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", `{"type":"doc"}`, model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))
	mockDB.mock.ExpectQuery("INSERT INTO document_versions").
		WillReturnRows(sqlmock.NewRows([]string{"version_number"}).AddRow(1))
	mockDB.mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.mock.ExpectCommit()

	svc := newDocumentService(mockDB)
	doc, ver, err := svc.Publish(context.Background(), "u1", "d1", "first release")
	require.NoError(t, err)
	require.Equal(t, model.DocumentStatusPublished, doc.Status)
	require.Equal(t, doc.Content, doc.PublishedContent)
	require.NotZero(t, doc.PublishedAt)
	require.Equal(t, 1, ver.VersionNumber)
	require.Equal(t, "first release", ver.Annotation)
	require.Equal(t, doc.Content, ver.Content)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestPublishRollsBackOnVersionFailure(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectBegin()
	mockDB.mock.ExpectQuery("FROM documents WHERE .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(documentColumns))
	mockDB.mock.ExpectRollback()

	svc := newDocumentService(mockDB)
	_, _, err := svc.Publish(context.Background(), "u1", "missing", "")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestRestoreSnapshotsBeforeOverwriting(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM document_versions").
		WillReturnRows(sqlmock.NewRows(versionColumns).
			AddRow("v2", "d1", 2, "old title", `{"old":true}`, "", "u1", 50))
	mockDB.mock.ExpectBegin()
	mockDB.mock.ExpectQuery("FROM documents WHERE .+ FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "current title", `{"current":true}`, model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))
	mockDB.mock.ExpectQuery("INSERT INTO document_versions").
		WillReturnRows(sqlmock.NewRows([]string{"version_number"}).AddRow(5))
	mockDB.mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.mock.ExpectCommit()

	svc := newDocumentService(mockDB)
	doc, err := svc.RestoreVersion(context.Background(), "u1", "d1", "v2")
	require.NoError(t, err)
	require.Equal(t, "old title", doc.Title)
	require.Equal(t, `{"old":true}`, doc.Content)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestUnpublishKeepsSnapshotFields(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", `{"v":2}`, model.DocumentStatusPublished, `{"v":1}`, 90, 0, 1, 100, 100))
	mockDB.mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := newDocumentService(mockDB)
	doc, err := svc.Unpublish(context.Background(), "u1", "d1")
	require.NoError(t, err)
	require.Equal(t, model.DocumentStatusDraft, doc.Status)
	require.Equal(t, `{"v":1}`, doc.PublishedContent)
	require.EqualValues(t, 90, doc.PublishedAt)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestUnpublishDraftRejected(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))

	svc := newDocumentService(mockDB)
	_, err := svc.Unpublish(context.Background(), "u1", "d1")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	svc := newDocumentService(mockDB)
	_, err := svc.Create(context.Background(), "u1", "   ", "{}", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
