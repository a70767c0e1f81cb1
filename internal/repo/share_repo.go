package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var shareFields = []string{"id", "document_id", "email", "token", "expires_at", "revoked", "ctime"}

type ShareRepo struct {
	db *sql.DB
}

func NewShareRepo(db *sql.DB) *ShareRepo {
	return &ShareRepo{db: db}
}

func (r *ShareRepo) Create(ctx context.Context, share *model.Share) error {
	data := map[string]interface{}{
		"id":          share.ID,
		"document_id": share.DocumentID,
		"email":       share.Email,
		"token":       share.Token,
		"expires_at":  share.ExpiresAt,
		"revoked":     share.Revoked,
		"ctime":       share.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("shares", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ShareRepo) GetByID(ctx context.Context, docID, shareID string) (*model.Share, error) {
	where := map[string]interface{}{
		"id":          shareID,
		"document_id": docID,
	}
	return r.getOne(ctx, where)
}

func (r *ShareRepo) GetByToken(ctx context.Context, token string) (*model.Share, error) {
	return r.getOne(ctx, map[string]interface{}{"token": token})
}

func (r *ShareRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Share, error) {
	sqlStr, args, err := builder.BuildSelect("shares", where, shareFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanShare(rows)
}

func (r *ShareRepo) ListByDocument(ctx context.Context, docID string) ([]model.Share, error) {
	where := map[string]interface{}{
		"document_id": docID,
		"_orderby":    "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("shares", where, shareFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	shares := make([]model.Share, 0)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, *share)
	}
	return shares, rows.Err()
}

func (r *ShareRepo) SetRevoked(ctx context.Context, docID, shareID string, revoked int) error {
	where := map[string]interface{}{
		"id":          shareID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildUpdate("shares", where,
		map[string]interface{}{"revoked": revoked})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// RevokeExpired flips expired, still-active shares to revoked and returns the
// affected tokens so the caller can drop them from its cache.
func (r *ShareRepo) RevokeExpired(ctx context.Context, now int64) ([]string, error) {
	sqlStr := `UPDATE shares SET revoked = 1
		WHERE revoked = 0 AND expires_at > 0 AND expires_at < $1
		RETURNING token`
	rows, err := r.db.QueryContext(ctx, sqlStr, now)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	tokens := make([]string, 0)
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func scanShare(rows *sql.Rows) (*model.Share, error) {
	var share model.Share
	err := rows.Scan(&share.ID, &share.DocumentID, &share.Email, &share.Token,
		&share.ExpiresAt, &share.Revoked, &share.Ctime)
	if err != nil {
		return nil, err
	}
	return &share, nil
}
