package service

import (
	"context"
	"strings"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

type TagService struct {
	tags *repo.TagRepo
	docs *repo.DocumentRepo
}

func NewTagService(tags *repo.TagRepo, docs *repo.DocumentRepo) *TagService {
	return &TagService{tags: tags, docs: docs}
}

func (s *TagService) Create(ctx context.Context, userID, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	tag := &model.Tag{
		ID:     newID(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Ctime:  timeutil.NowUnix(),
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, error) {
	return s.tags.List(ctx, userID)
}

func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	return s.tags.Delete(ctx, userID, tagID)
}

func (s *TagService) ListByDocument(ctx context.Context, userID, docID string) ([]model.Tag, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.tags.ListByDocument(ctx, docID)
}

func (s *TagService) Attach(ctx context.Context, userID, docID, tagID string) error {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return err
	}
	if _, err := s.tags.GetByID(ctx, userID, tagID); err != nil {
		return err
	}
	return s.tags.Attach(ctx, userID, docID, tagID)
}

func (s *TagService) Detach(ctx context.Context, userID, docID, tagID string) error {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return err
	}
	return s.tags.Detach(ctx, docID, tagID)
}
