package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/repo"
)

var shareColumns = []string{"id", "document_id", "email", "token", "expires_at", "revoked", "ctime"}

func newShareService(db *sqlmockDB) *ShareService {
	return NewShareService(repo.NewShareRepo(db.db), repo.NewDocumentRepo(db.db),
		NewNoopSender(), "http://localhost:8080")
}

func TestResolveTokenRevoked(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").
		WillReturnRows(sqlmock.NewRows(shareColumns).
			AddRow("s1", "d1", "", "tok", 0, 1, 100))

	svc := newShareService(mockDB)
	_, _, err := svc.ResolveToken(context.Background(), "tok")
	require.ErrorIs(t, err, ErrShareRevoked)
	require.ErrorIs(t, err, appErr.ErrForbidden)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestResolveTokenExpired(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	past := time.Now().Add(-time.Hour).Unix()
	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").
		WillReturnRows(sqlmock.NewRows(shareColumns).
			AddRow("s1", "d1", "", "tok", past, 0, 100))

	svc := newShareService(mockDB)
	_, _, err := svc.ResolveToken(context.Background(), "tok")
	require.ErrorIs(t, err, ErrShareExpired)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestResolveTokenUnknown(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").
		WillReturnRows(sqlmock.NewRows(shareColumns))

	svc := newShareService(mockDB)
	_, _, err := svc.ResolveToken(context.Background(), "nobody")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestResolveTokenCachesLookup(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	shareRows := sqlmock.NewRows(shareColumns).
		AddRow("s1", "d1", "", "tok", 0, 0, 100)
	docRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100)
	}
	// one share query serves both resolves, the document is re-read each time
	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").WillReturnRows(shareRows)
	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(docRows())
	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(docRows())

	svc := newShareService(mockDB)
	_, _, err := svc.ResolveToken(context.Background(), "tok")
	require.NoError(t, err)
	_, doc, err := svc.ResolveToken(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "d1", doc.ID)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestPublicViewServesSnapshotWhenPublished(t *testing.T) {
	doc := &model.Document{
		ID:               "d1",
		UserID:           "u1",
		Status:           model.DocumentStatusPublished,
		Content:          `{"draft":true}`,
		PublishedContent: `{"published":true}`,
	}
	view := PublicView(doc)
	require.Equal(t, `{"published":true}`, view.Content)
	require.Empty(t, view.UserID)
	// the source document is untouched
	require.Equal(t, `{"draft":true}`, doc.Content)
}

func TestPublicViewServesWorkingCopyWhenNeverPublished(t *testing.T) {
	doc := &model.Document{
		ID:      "d1",
		Status:  model.DocumentStatusDraft,
		Content: `{"draft":true}`,
	}
	view := PublicView(doc)
	require.Equal(t, `{"draft":true}`, view.Content)
}

func TestPublicViewKeepsSnapshotAfterUnpublish(t *testing.T) {
	doc := &model.Document{
		ID:               "d1",
		Status:           model.DocumentStatusDraft,
		Content:          `{"edits":"in progress"}`,
		PublishedContent: `{"published":true}`,
	}
	view := PublicView(doc)
	require.Equal(t, `{"published":true}`, view.Content)
}

func TestRevokeForeignDocumentForbidden(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").
		WillReturnRows(sqlmock.NewRows(shareColumns).
			AddRow("s1", "d1", "", "tok", 0, 0, 100))
	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "owner", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))

	svc := newShareService(mockDB)
	err := svc.Revoke(context.Background(), "intruder", "d1", "s1")
	require.ErrorIs(t, err, appErr.ErrForbidden)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestUnrevokeActiveShareRejected(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM shares").
		WillReturnRows(sqlmock.NewRows(shareColumns).
			AddRow("s1", "d1", "", "tok", 0, 0, 100))
	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))

	svc := newShareService(mockDB)
	err := svc.Unrevoke(context.Background(), "u1", "d1", "s1")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestCreateShareRejectsPastExpiry(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "u1", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))

	svc := newShareService(mockDB)
	_, err := svc.Create(context.Background(), "u1", "d1", "", time.Now().Add(-time.Minute).Unix())
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}
