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

func newCommentService(db *sqlmockDB) *CommentService {
	shares := newShareService(db)
	return NewCommentService(repo.NewCommentRepo(db.db), repo.NewDocumentRepo(db.db),
		repo.NewUserRepo(db.db), shares, NewNoopSender(), "http://localhost:8080")
}

func TestCommentListForeignDocumentForbidden(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("d1", "someone-else", "", "doc", "{}", model.DocumentStatusDraft, "", 0, 0, 1, 100, 100))

	svc := newCommentService(mockDB)
	_, err := svc.List(context.Background(), "u1", "d1", 10, 0)
	require.ErrorIs(t, err, appErr.ErrForbidden)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestCommentListMissingDocumentNotFound(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	svc := newCommentService(mockDB)
	_, err := svc.List(context.Background(), "u1", "missing", 10, 0)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestCreateViaShareValidation(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	svc := newCommentService(mockDB)
	cases := []CreateCommentRequest{
		{AuthorName: "", Content: "hello"},
		{AuthorName: "alice", Content: "   "},
		{AuthorName: "alice", Content: "hi", SelectionStart: 5, SelectionEnd: 2},
		{AuthorName: "alice", Content: "hi", SelectionStart: -1},
	}
	for _, req := range cases {
		_, err := svc.CreateViaShare(context.Background(), "tok", req)
		require.ErrorIs(t, err, appErr.ErrInvalid)
	}
}
