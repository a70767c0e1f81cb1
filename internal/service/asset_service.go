package service

import (
	"context"
	"io"
	"strings"

	"github.com/jotterhq/jotter/internal/filestore"
	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

const maxAssetSize = 20 << 20

var allowedMimePrefixes = []string{"image/", "application/pdf", "text/"}

type AssetService struct {
	assets *repo.AssetRepo
	store  filestore.IFileStore
}

func NewAssetService(assets *repo.AssetRepo, store filestore.IFileStore) *AssetService {
	return &AssetService{assets: assets, store: store}
}

func mimeAllowed(mimeType string) bool {
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

func (s *AssetService) Upload(ctx context.Context, userID, filename, mimeType string, size int64, r io.Reader) (*model.Asset, error) {
	if size <= 0 || size > maxAssetSize {
		return nil, appErr.ErrInvalid
	}
	if !mimeAllowed(mimeType) {
		return nil, appErr.ErrInvalid
	}
	key := newID()
	if err := s.store.Save(ctx, key, io.LimitReader(r, size), size); err != nil {
		return nil, err
	}
	asset := &model.Asset{
		ID:               newID(),
		UserID:           userID,
		Filename:         key,
		OriginalFilename: filename,
		MimeType:         mimeType,
		SizeBytes:        size,
		StoreKey:         key,
		Ctime:            timeutil.NowUnix(),
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		// best effort cleanup, the blob is orphaned otherwise
		_ = s.store.Remove(ctx, key)
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) Get(ctx context.Context, userID, assetID string) (*model.Asset, error) {
	return s.assets.GetByID(ctx, userID, assetID)
}

func (s *AssetService) Open(ctx context.Context, userID, assetID string) (*model.Asset, io.ReadCloser, error) {
	asset, err := s.assets.GetByID(ctx, userID, assetID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, asset.StoreKey)
	if err != nil {
		return nil, nil, err
	}
	return asset, rc, nil
}

func (s *AssetService) List(ctx context.Context, userID string, limit, offset uint) ([]model.Asset, error) {
	return s.assets.List(ctx, userID, limit, offset)
}

func (s *AssetService) Delete(ctx context.Context, userID, assetID string) error {
	asset, err := s.assets.GetByID(ctx, userID, assetID)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, userID, assetID); err != nil {
		return err
	}
	return s.store.Remove(ctx, asset.StoreKey)
}
