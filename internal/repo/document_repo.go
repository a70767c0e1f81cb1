package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

const (
	DocumentStateNormal  = 1
	DocumentStateTrashed = 2
)

var documentFields = []string{
	"id", "user_id", "folder_id", "title", "content", "status",
	"published_content", "published_at", "pinned", "state", "ctime", "mtime",
}

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func scanDocument(rows *sql.Rows) (*model.Document, error) {
	var doc model.Document
	err := rows.Scan(&doc.ID, &doc.UserID, &doc.FolderID, &doc.Title, &doc.Content, &doc.Status,
		&doc.PublishedContent, &doc.PublishedAt, &doc.Pinned, &doc.State, &doc.Ctime, &doc.Mtime)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	data := map[string]interface{}{
		"id":                doc.ID,
		"user_id":           doc.UserID,
		"folder_id":         doc.FolderID,
		"title":             doc.Title,
		"content":           doc.Content,
		"status":            doc.Status,
		"published_content": doc.PublishedContent,
		"published_at":      doc.PublishedAt,
		"pinned":            doc.Pinned,
		"state":             doc.State,
		"ctime":             doc.Ctime,
		"mtime":             doc.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, userID, docID string) (*model.Document, error) {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	return r.getOne(ctx, r.db, where)
}

// GetByDocID loads a document regardless of owner; used by the share read
// path where access is granted by token, not ownership.
func (r *DocumentRepo) GetByDocID(ctx context.Context, docID string) (*model.Document, error) {
	where := map[string]interface{}{
		"id":    docID,
		"state": DocumentStateNormal,
	}
	return r.getOne(ctx, r.db, where)
}

func (r *DocumentRepo) getOne(ctx context.Context, q Queryer, where map[string]interface{}) (*model.Document, error) {
	sqlStr, args, err := builder.BuildSelect("documents", where, documentFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanDocument(rows)
}

// GetByIDForUpdateTx locks the document row for the duration of the
// transaction. Publish and restore take this lock first so per-document
// version numbering is serialized.
func (r *DocumentRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, userID, docID string) (*model.Document, error) {
	sqlStr := `SELECT id, user_id, folder_id, title, content, status, published_content, published_at, pinned, state, ctime, mtime
		FROM documents WHERE id = $1 AND user_id = $2 AND state = $3 FOR UPDATE`
	rows, err := tx.QueryContext(ctx, sqlStr, docID, userID, DocumentStateNormal)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanDocument(rows)
}

func (r *DocumentRepo) List(ctx context.Context, userID, folderID string, limit, offset uint, orderBy string) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	if folderID != "" {
		where["folder_id"] = folderID
	}
	if orderBy == "" {
		orderBy = "mtime desc"
	}
	where["_orderby"] = orderBy
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	return r.list(ctx, where)
}

func (r *DocumentRepo) ListPinned(ctx context.Context, userID string) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"state":    DocumentStateNormal,
		"pinned":   1,
		"_orderby": "mtime desc",
	}
	return r.list(ctx, where)
}

func (r *DocumentRepo) list(ctx context.Context, where map[string]interface{}) ([]model.Document, error) {
	sqlStr, args, err := builder.BuildSelect("documents", where, documentFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	docs := make([]model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepo) Update(ctx context.Context, doc *model.Document) error {
	where := map[string]interface{}{
		"id":      doc.ID,
		"user_id": doc.UserID,
		"state":   DocumentStateNormal,
	}
	update := map[string]interface{}{
		"title":     doc.Title,
		"content":   doc.Content,
		"folder_id": doc.FolderID,
		"mtime":     doc.Mtime,
	}
	return r.update(ctx, r.db, where, update)
}

func (r *DocumentRepo) UpdatePinned(ctx context.Context, userID, docID string, pinned int, now int64) error {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	return r.update(ctx, r.db, where, map[string]interface{}{"pinned": pinned, "mtime": now})
}

func (r *DocumentRepo) UpdateFolder(ctx context.Context, userID, docID, folderID string, now int64) error {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	return r.update(ctx, r.db, where, map[string]interface{}{"folder_id": folderID, "mtime": now})
}

// ClearFolder detaches all documents from a folder; used when the folder is
// deleted.
func (r *DocumentRepo) ClearFolder(ctx context.Context, userID, folderID string) error {
	where := map[string]interface{}{
		"user_id":   userID,
		"folder_id": folderID,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, map[string]interface{}{"folder_id": ""})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// UpdatePublishStateTx freezes the published snapshot inside the publish
// transaction.
func (r *DocumentRepo) UpdatePublishStateTx(ctx context.Context, tx *sql.Tx, doc *model.Document) error {
	where := map[string]interface{}{
		"id":      doc.ID,
		"user_id": doc.UserID,
		"state":   DocumentStateNormal,
	}
	update := map[string]interface{}{
		"status":            doc.Status,
		"published_content": doc.PublishedContent,
		"published_at":      doc.PublishedAt,
		"mtime":             doc.Mtime,
	}
	return r.update(ctx, tx, where, update)
}

// UpdateContentTx overwrites title/content inside the restore transaction.
func (r *DocumentRepo) UpdateContentTx(ctx context.Context, tx *sql.Tx, doc *model.Document) error {
	where := map[string]interface{}{
		"id":      doc.ID,
		"user_id": doc.UserID,
		"state":   DocumentStateNormal,
	}
	update := map[string]interface{}{
		"title":   doc.Title,
		"content": doc.Content,
		"mtime":   doc.Mtime,
	}
	return r.update(ctx, tx, where, update)
}

func (r *DocumentRepo) UpdateStatus(ctx context.Context, userID, docID, status string, now int64) error {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	return r.update(ctx, r.db, where, map[string]interface{}{"status": status, "mtime": now})
}

func (r *DocumentRepo) update(ctx context.Context, q Queryer, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := q.ExecContext(ctx, sqlStr, args...)
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

func (r *DocumentRepo) Trash(ctx context.Context, userID, docID string, now int64) error {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
		"state":   DocumentStateNormal,
	}
	return r.update(ctx, r.db, where, map[string]interface{}{"state": DocumentStateTrashed, "mtime": now})
}

// PurgeTrashedBefore hard-deletes documents trashed before the cutoff.
// Versions, shares and comments go with them via FK cascade.
func (r *DocumentRepo) PurgeTrashedBefore(ctx context.Context, cutoff int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE state = $1 AND mtime < $2`, DocumentStateTrashed, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
