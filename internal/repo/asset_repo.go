package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/jotterhq/jotter/internal/model"
	"github.com/jotterhq/jotter/internal/pkg/dbutil"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
)

var assetFields = []string{
	"id", "user_id", "filename", "original_filename", "mime_type", "size_bytes", "store_key", "ctime",
}

type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	data := map[string]interface{}{
		"id":                asset.ID,
		"user_id":           asset.UserID,
		"filename":          asset.Filename,
		"original_filename": asset.OriginalFilename,
		"mime_type":         asset.MimeType,
		"size_bytes":        asset.SizeBytes,
		"store_key":         asset.StoreKey,
		"ctime":             asset.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("assets", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AssetRepo) GetByID(ctx context.Context, userID, assetID string) (*model.Asset, error) {
	where := map[string]interface{}{
		"id":      assetID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("assets", where, assetFields)
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
	return scanAsset(rows)
}

func (r *AssetRepo) List(ctx context.Context, userID string, limit, offset uint) ([]model.Asset, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("assets", where, assetFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	assets := make([]model.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

func (r *AssetRepo) Delete(ctx context.Context, userID, assetID string) error {
	where := map[string]interface{}{
		"id":      assetID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("assets", where)
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

func scanAsset(rows *sql.Rows) (*model.Asset, error) {
	var asset model.Asset
	err := rows.Scan(&asset.ID, &asset.UserID, &asset.Filename, &asset.OriginalFilename,
		&asset.MimeType, &asset.SizeBytes, &asset.StoreKey, &asset.Ctime)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
