package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var versionFields = []string{
	"id", "document_id", "version_number", "title", "content", "annotation", "created_by", "ctime",
}

type VersionRepo struct {
	db *sql.DB
}

func NewVersionRepo(db *sql.DB) *VersionRepo {
	return &VersionRepo{db: db}
}

// CreateNextTx assigns the next version number in the same statement that
// inserts the row. The caller must already hold the document row lock; the
// UNIQUE(document_id, version_number) index is the backstop and surfaces as
// ErrConflict.
func (r *VersionRepo) CreateNextTx(ctx context.Context, tx *sql.Tx, ver *model.DocumentVersion) error {
	sqlStr := `INSERT INTO document_versions (id, document_id, version_number, title, content, annotation, created_by, ctime)
		SELECT $1, $2, COALESCE(MAX(version_number), 0) + 1, $3, $4, $5, $6, $7
		FROM document_versions WHERE document_id = $2
		RETURNING version_number`
	row := tx.QueryRowContext(ctx, sqlStr,
		ver.ID, ver.DocumentID, ver.Title, ver.Content, ver.Annotation, ver.CreatedBy, ver.Ctime)
	if err := row.Scan(&ver.VersionNumber); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *VersionRepo) GetByID(ctx context.Context, docID, versionID string) (*model.DocumentVersion, error) {
	where := map[string]interface{}{
		"id":          versionID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildSelect("document_versions", where, versionFields)
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
	return scanVersion(rows)
}

// List returns newest first.
func (r *VersionRepo) List(ctx context.Context, docID string, limit, offset uint) ([]model.DocumentVersion, error) {
	where := map[string]interface{}{
		"document_id": docID,
		"_orderby":    "version_number desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("document_versions", where, versionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	vers := make([]model.DocumentVersion, 0)
	for rows.Next() {
		ver, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		vers = append(vers, *ver)
	}
	return vers, rows.Err()
}

func (r *VersionRepo) Count(ctx context.Context, docID string) (int64, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM document_versions WHERE document_id = $1", docID)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VersionRepo) UpdateAnnotation(ctx context.Context, docID, versionID, annotation string) error {
	where := map[string]interface{}{
		"id":          versionID,
		"document_id": docID,
	}
	sqlStr, args, err := builder.BuildUpdate("document_versions", where,
		map[string]interface{}{"annotation": annotation})
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

func scanVersion(rows *sql.Rows) (*model.DocumentVersion, error) {
	var ver model.DocumentVersion
	err := rows.Scan(&ver.ID, &ver.DocumentID, &ver.VersionNumber, &ver.Title,
		&ver.Content, &ver.Annotation, &ver.CreatedBy, &ver.Ctime)
	if err != nil {
		return nil, err
	}
	return &ver, nil
}
