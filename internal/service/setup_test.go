package service

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type sqlmockDB struct {
	db   *sql.DB
	mock sqlmock.Sqlmock
}

func newSQLMock(t *testing.T) *sqlmockDB {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return &sqlmockDB{db: db, mock: mock}
}

func (m *sqlmockDB) Close() {
	_ = m.db.Close()
}
