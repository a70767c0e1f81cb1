package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var tagFields = []string{"id", "user_id", "name", "color", "ctime"}

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) Create(ctx context.Context, tag *model.Tag) error {
	data := map[string]interface{}{
		"id":      tag.ID,
		"user_id": tag.UserID,
		"name":    tag.Name,
		"color":   tag.Color,
		"ctime":   tag.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("tags", []map[string]interface{}{data})
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

func (r *TagRepo) GetByID(ctx context.Context, userID, tagID string) (*model.Tag, error) {
	where := map[string]interface{}{
		"id":      tagID,
		"user_id": userID,
	}
	return r.getOne(ctx, where)
}

func (r *TagRepo) GetByName(ctx context.Context, userID, name string) (*model.Tag, error) {
	where := map[string]interface{}{
		"user_id": userID,
		"name":    name,
	}
	return r.getOne(ctx, where)
}

func (r *TagRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Tag, error) {
	sqlStr, args, err := builder.BuildSelect("tags", where, tagFields)
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
	var tag model.Tag
	if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.Ctime); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) List(ctx context.Context, userID string) ([]model.Tag, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "name asc",
	}
	sqlStr, args, err := builder.BuildSelect("tags", where, tagFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	tags := make([]model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.Ctime); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *TagRepo) Delete(ctx context.Context, userID, tagID string) error {
	where := map[string]interface{}{
		"id":      tagID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("tags", where)
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

// ListByDocument joins through document_tags.
func (r *TagRepo) ListByDocument(ctx context.Context, docID string) ([]model.Tag, error) {
	sqlStr := `SELECT t.id, t.user_id, t.name, t.color, t.ctime FROM tags t
		INNER JOIN document_tags dt ON dt.tag_id = t.id
		WHERE dt.document_id = $1 ORDER BY t.name ASC`
	rows, err := r.db.QueryContext(ctx, sqlStr, docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	tags := make([]model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &tag.Ctime); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *TagRepo) Attach(ctx context.Context, userID, docID, tagID string) error {
	data := map[string]interface{}{
		"user_id":     userID,
		"document_id": docID,
		"tag_id":      tagID,
	}
	sqlStr, args, err := builder.BuildInsert("document_tags", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			// attaching twice is a no-op
			return nil
		}
		return err
	}
	return nil
}

func (r *TagRepo) Detach(ctx context.Context, docID, tagID string) error {
	where := map[string]interface{}{
		"document_id": docID,
		"tag_id":      tagID,
	}
	sqlStr, args, err := builder.BuildDelete("document_tags", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListDocumentIDs returns the ids of documents carrying the tag, used for
// tag-filtered listing.
func (r *TagRepo) ListDocumentIDs(ctx context.Context, tagID string) ([]string, error) {
	sqlStr, args, err := builder.BuildSelect("document_tags",
		map[string]interface{}{"tag_id": tagID}, []string{"document_id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
