package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var folderFields = []string{"id", "user_id", "parent_id", "name", "ctime", "mtime"}

type FolderRepo struct {
	db *sql.DB
}

func NewFolderRepo(db *sql.DB) *FolderRepo {
	return &FolderRepo{db: db}
}

func (r *FolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	data := map[string]interface{}{
		"id":        folder.ID,
		"user_id":   folder.UserID,
		"parent_id": folder.ParentID,
		"name":      folder.Name,
		"ctime":     folder.Ctime,
		"mtime":     folder.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("folders", []map[string]interface{}{data})
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

func (r *FolderRepo) GetByID(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	where := map[string]interface{}{
		"id":      folderID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("folders", where, folderFields)
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
	var folder model.Folder
	if err := rows.Scan(&folder.ID, &folder.UserID, &folder.ParentID, &folder.Name, &folder.Ctime, &folder.Mtime); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepo) List(ctx context.Context, userID string) ([]model.Folder, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "name asc",
	}
	sqlStr, args, err := builder.BuildSelect("folders", where, folderFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	folders := make([]model.Folder, 0)
	for rows.Next() {
		var folder model.Folder
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.ParentID, &folder.Name, &folder.Ctime, &folder.Mtime); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (r *FolderRepo) Rename(ctx context.Context, userID, folderID, name string, now int64) error {
	where := map[string]interface{}{
		"id":      folderID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildUpdate("folders", where,
		map[string]interface{}{"name": name, "mtime": now})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
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

func (r *FolderRepo) Delete(ctx context.Context, userID, folderID string) error {
	where := map[string]interface{}{
		"id":      folderID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("folders", where)
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
