package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var commentFields = []string{
	"id", "document_id", "share_id", "author_name", "author_email", "content",
	"selection_start", "selection_end", "selection_text", "resolved", "ctime", "mtime",
}

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	data := map[string]interface{}{
		"id":              comment.ID,
		"document_id":     comment.DocumentID,
		"share_id":        comment.ShareID,
		"author_name":     comment.AuthorName,
		"author_email":    comment.AuthorEmail,
		"content":         comment.Content,
		"selection_start": comment.SelectionStart,
		"selection_end":   comment.SelectionEnd,
		"selection_text":  comment.SelectionText,
		"resolved":        comment.Resolved,
		"ctime":           comment.Ctime,
		"mtime":           comment.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("comments", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *CommentRepo) GetByID(ctx context.Context, docID, commentID string) (*model.Comment, error) {
	where := map[string]interface{}{
		"id":          commentID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildSelect("comments", where, commentFields)
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
	return scanComment(rows)
}

func (r *CommentRepo) ListByDocument(ctx context.Context, docID string, limit, offset uint) ([]model.Comment, error) {
	where := map[string]interface{}{
		"document_id": docID,
		"_orderby":    "ctime desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("comments", where, commentFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	comments := make([]model.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Count(ctx context.Context, docID string) (int64, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM comments WHERE document_id = $1", docID)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CommentRepo) SetResolved(ctx context.Context, docID, commentID string, resolved int, now int64) error {
	where := map[string]interface{}{
		"id":          commentID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildUpdate("comments", where,
		map[string]interface{}{"resolved": resolved, "mtime": now})
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

func (r *CommentRepo) Delete(ctx context.Context, docID, commentID string) error {
	where := map[string]interface{}{
		"id":          commentID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildDelete("comments", where)
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

func scanComment(rows *sql.Rows) (*model.Comment, error) {
	var comment model.Comment
	err := rows.Scan(&comment.ID, &comment.DocumentID, &comment.ShareID,
		&comment.AuthorName, &comment.AuthorEmail, &comment.Content,
		&comment.SelectionStart, &comment.SelectionEnd, &comment.SelectionText,
		&comment.Resolved, &comment.Ctime, &comment.Mtime)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
