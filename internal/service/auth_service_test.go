package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/jwt"
	"github.com/jotterhq/jotter/internal/pkg/password"
	"github.com/jotterhq/jotter/internal/repo"
)

var userColumns = []string{"id", "email", "name", "password_hash", "ctime", "mtime"}

func newAuthService(db *sqlmockDB) *AuthService {
	return NewAuthService(repo.NewUserRepo(db.db), []byte("test-secret"), time.Hour)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	svc := newAuthService(mockDB)
	_, err := svc.Register(context.Background(), "not-an-email", "x", "longenough")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = svc.Register(context.Background(), "a@b.com", "x", "short")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestLoginWrongPassword(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	hash, err := password.Hash("correct-password")
	require.NoError(t, err)
	mockDB.mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "a@b.com", "alice", hash, 100, 100))

	svc := newAuthService(mockDB)
	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong-password")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestLoginUnknownUserMapsToUnauthorized(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	mockDB.mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userColumns))

	svc := newAuthService(mockDB)
	_, _, err := svc.Login(context.Background(), "nobody@b.com", "whatever")
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
	require.NoError(t, mockDB.mock.ExpectationsWereMet())
}

func TestLoginIssuesParsableToken(t *testing.T) {
	mockDB := newSQLMock(t)
	defer mockDB.Close()

	hash, err := password.Hash("correct-password")
	require.NoError(t, err)
	mockDB.mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "a@b.com", "alice", hash, 100, 100))

	svc := newAuthService(mockDB)
	token, user, err := svc.Login(context.Background(), "A@B.com", "correct-password")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	claims, err := jwt.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
}
