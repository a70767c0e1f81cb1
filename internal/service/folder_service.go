package service

import (
	"context"
	"strings"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

type FolderService struct {
	folders *repo.FolderRepo
	docs    *repo.DocumentRepo
}

func NewFolderService(folders *repo.FolderRepo, docs *repo.DocumentRepo) *FolderService {
	return &FolderService{folders: folders, docs: docs}
}

func (s *FolderService) Create(ctx context.Context, userID, parentID, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	if parentID != "" {
		if _, err := s.folders.GetByID(ctx, userID, parentID); err != nil {
			return nil, err
		}
	}
	now := timeutil.NowUnix()
	folder := &model.Folder{
		ID:       newID(),
		UserID:   userID,
		ParentID: parentID,
		Name:     name,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) List(ctx context.Context, userID string) ([]model.Folder, error) {
	return s.folders.List(ctx, userID)
}

func (s *FolderService) Rename(ctx context.Context, userID, folderID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return appErr.ErrInvalid
	}
	return s.folders.Rename(ctx, userID, folderID, name, timeutil.NowUnix())
}

// Delete removes the folder; documents inside keep living and fall back to
// the root.
func (s *FolderService) Delete(ctx context.Context, userID, folderID string) error {
	if _, err := s.folders.GetByID(ctx, userID, folderID); err != nil {
		return err
	}
	if err := s.docs.ClearFolder(ctx, userID, folderID); err != nil {
		return err
	}
	return s.folders.Delete(ctx, userID, folderID)
}
