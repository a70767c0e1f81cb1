package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/content"
	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

const maxTitleLen = 500

type DocumentService struct {
	db       *sql.DB
	docs     *repo.DocumentRepo
	versions *repo.VersionRepo
	folders  *repo.FolderRepo
	tags     *repo.TagRepo
	users    *repo.UserRepo
}

func NewDocumentService(db *sql.DB, docs *repo.DocumentRepo, versions *repo.VersionRepo,
	folders *repo.FolderRepo, tags *repo.TagRepo, users *repo.UserRepo) *DocumentService {
	return &DocumentService{
		db:       db,
		docs:     docs,
		versions: versions,
		folders:  folders,
		tags:     tags,
		users:    users,
	}
}

func (s *DocumentService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *DocumentService) checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", appErr.ErrInvalid
	}
	if len(title) > maxTitleLen {
		return "", appErr.ErrInvalid
	}
	return title, nil
}

func (s *DocumentService) checkFolder(ctx context.Context, userID, folderID string) error {
	if folderID == "" {
		return nil
	}
	_, err := s.folders.GetByID(ctx, userID, folderID)
	return err
}

func (s *DocumentService) Create(ctx context.Context, userID, title, body, folderID string) (*model.Document, error) {
	title, err := s.checkTitle(title)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:       newID(),
		UserID:   userID,
		FolderID: folderID,
		Title:    title,
		Content:  body,
		Status:   model.DocumentStatusDraft,
		State:    repo.DocumentStateNormal,
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, userID, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, userID, docID)
}

type ListOptions struct {
	FolderID string
	TagID    string
	Pinned   bool
	Limit    uint
	Offset   uint
}

func (s *DocumentService) List(ctx context.Context, userID string, opts ListOptions) ([]model.Document, error) {
	var docs []model.Document
	var err error
	if opts.Pinned {
		docs, err = s.docs.ListPinned(ctx, userID)
	} else {
		docs, err = s.docs.List(ctx, userID, opts.FolderID, opts.Limit, opts.Offset, "")
	}
	if err != nil {
		return nil, err
	}
	if opts.TagID == "" {
		return docs, nil
	}
	ids, err := s.tags.ListDocumentIDs(ctx, opts.TagID)
	if err != nil {
		return nil, err
	}
	tagged := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		tagged[id] = struct{}{}
	}
	filtered := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		if _, ok := tagged[doc.ID]; ok {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

func (s *DocumentService) Update(ctx context.Context, userID, docID, title, body string) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if title != "" {
		title, err = s.checkTitle(title)
		if err != nil {
			return nil, err
		}
		doc.Title = title
	}
	doc.Content = body
	doc.Mtime = timeutil.NowUnix()
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) SetPinned(ctx context.Context, userID, docID string, pinned bool) error {
	value := 0
	if pinned {
		value = 1
	}
	return s.docs.UpdatePinned(ctx, userID, docID, value, timeutil.NowUnix())
}

func (s *DocumentService) MoveToFolder(ctx context.Context, userID, docID, folderID string) error {
	if err := s.checkFolder(ctx, userID, folderID); err != nil {
		return err
	}
	return s.docs.UpdateFolder(ctx, userID, docID, folderID, timeutil.NowUnix())
}

func (s *DocumentService) Trash(ctx context.Context, userID, docID string) error {
	return s.docs.Trash(ctx, userID, docID, timeutil.NowUnix())
}

// PurgeTrashed hard-deletes documents that have been in the trash longer
// than the retention window.
func (s *DocumentService) PurgeTrashed(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := timeutil.NowUnix() - int64(retentionDays)*86400
	return s.docs.PurgeTrashedBefore(ctx, cutoff)
}

// Publish freezes the current content as the public snapshot and records it
// as the next version. The document row lock serializes concurrent publishes
// so each one gets a distinct version number.
func (s *DocumentService) Publish(ctx context.Context, userID, docID, annotation string) (*model.Document, *model.DocumentVersion, error) {
	var doc *model.Document
	var ver *model.DocumentVersion
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		doc, err = s.docs.GetByIDForUpdateTx(ctx, tx, userID, docID)
		if err != nil {
			return err
		}
		now := timeutil.NowUnix()
		ver = &model.DocumentVersion{
			ID:         newID(),
			DocumentID: doc.ID,
			Title:      doc.Title,
			Content:    doc.Content,
			Annotation: annotation,
			CreatedBy:  userID,
			Ctime:      now,
		}
		if err := s.versions.CreateNextTx(ctx, tx, ver); err != nil {
			return err
		}
		doc.Status = model.DocumentStatusPublished
		doc.PublishedContent = doc.Content
		doc.PublishedAt = now
		doc.Mtime = now
		return s.docs.UpdatePublishStateTx(ctx, tx, doc)
	})
	if err != nil {
		return nil, nil, err
	}
	logutil.GetLogger(ctx).Info("document published",
		zap.String("doc_id", docID), zap.Int("version", ver.VersionNumber))
	return doc, ver, nil
}

// Unpublish flips the document back to draft. The published snapshot fields
// are left in place so re-publishing history stays inspectable.
func (s *DocumentService) Unpublish(ctx context.Context, userID, docID string) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if doc.Status != model.DocumentStatusPublished {
		return nil, appErr.ErrInvalid
	}
	now := timeutil.NowUnix()
	if err := s.docs.UpdateStatus(ctx, userID, docID, model.DocumentStatusDraft, now); err != nil {
		return nil, err
	}
	doc.Status = model.DocumentStatusDraft
	doc.Mtime = now
	return doc, nil
}

// RestoreVersion rewinds the working copy to an earlier version. The current
// content is snapshotted first, so a restore never loses anything.
func (s *DocumentService) RestoreVersion(ctx context.Context, userID, docID, versionID string) (*model.Document, error) {
	target, err := s.versions.GetByID(ctx, docID, versionID)
	if err != nil {
		return nil, err
	}
	var doc *model.Document
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		doc, err = s.docs.GetByIDForUpdateTx(ctx, tx, userID, docID)
		if err != nil {
			return err
		}
		now := timeutil.NowUnix()
		backup := &model.DocumentVersion{
			ID:         newID(),
			DocumentID: doc.ID,
			Title:      doc.Title,
			Content:    doc.Content,
			Annotation: fmt.Sprintf("before restoring to version %d", target.VersionNumber),
			CreatedBy:  userID,
			Ctime:      now,
		}
		if err := s.versions.CreateNextTx(ctx, tx, backup); err != nil {
			return err
		}
		doc.Title = target.Title
		doc.Content = target.Content
		doc.Mtime = now
		return s.docs.UpdateContentTx(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("document restored",
		zap.String("doc_id", docID), zap.Int("version", target.VersionNumber))
	return doc, nil
}

func (s *DocumentService) AnnotateVersion(ctx context.Context, userID, docID, versionID, annotation string) error {
	if len(annotation) > maxTitleLen {
		return appErr.ErrInvalid
	}
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return err
	}
	return s.versions.UpdateAnnotation(ctx, docID, versionID, annotation)
}

func (s *DocumentService) ListVersions(ctx context.Context, userID, docID string, limit, offset uint) ([]model.DocumentVersionSummary, int64, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, 0, err
	}
	vers, err := s.versions.List(ctx, docID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.versions.Count(ctx, docID)
	if err != nil {
		return nil, 0, err
	}
	creatorIDs := make([]string, 0, len(vers))
	seen := make(map[string]struct{}, len(vers))
	for _, ver := range vers {
		if _, ok := seen[ver.CreatedBy]; !ok {
			seen[ver.CreatedBy] = struct{}{}
			creatorIDs = append(creatorIDs, ver.CreatedBy)
		}
	}
	names, err := s.users.ListNamesByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, 0, err
	}
	summaries := make([]model.DocumentVersionSummary, 0, len(vers))
	for _, ver := range vers {
		summaries = append(summaries, model.DocumentVersionSummary{
			ID:            ver.ID,
			DocumentID:    ver.DocumentID,
			VersionNumber: ver.VersionNumber,
			Title:         ver.Title,
			Annotation:    ver.Annotation,
			CreatedBy:     ver.CreatedBy,
			CreatedByName: names[ver.CreatedBy],
			Ctime:         ver.Ctime,
		})
	}
	return summaries, total, nil
}

func (s *DocumentService) GetVersion(ctx context.Context, userID, docID, versionID string) (*model.DocumentVersion, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.versions.GetByID(ctx, docID, versionID)
}

// DiffVersion compares a stored version against the current working copy, or
// against another version when againstID is set. Output is word level with
// whitespace preserved.
func (s *DocumentService) DiffVersion(ctx context.Context, userID, docID, versionID, againstID string) ([]content.Segment, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	ver, err := s.versions.GetByID(ctx, docID, versionID)
	if err != nil {
		return nil, err
	}
	oldText := content.ExtractText(ver.Content)
	var newText string
	if againstID == "" {
		newText = content.ExtractText(doc.Content)
	} else {
		against, err := s.versions.GetByID(ctx, docID, againstID)
		if err != nil {
			return nil, err
		}
		newText = content.ExtractText(against.Content)
	}
	return content.DiffTexts(oldText, newText), nil
}

// Preview summarizes the document structure for hover cards.
func (s *DocumentService) Preview(ctx context.Context, userID, docID string, maxElements int) ([]content.PreviewElement, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	return content.ExtractStructuralElements(doc.Content, maxElements), nil
}

// ImportMarkdown creates a document from markdown source.
func (s *DocumentService) ImportMarkdown(ctx context.Context, userID, title, folderID string, src []byte) (*model.Document, error) {
	node := content.FromMarkdown(src)
	if node == nil {
		return nil, appErr.ErrInvalid
	}
	return s.Create(ctx, userID, title, content.Encode(node), folderID)
}

// ExportMarkdown renders the current working copy as markdown.
func (s *DocumentService) ExportMarkdown(ctx context.Context, userID, docID string) (string, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	node := content.Decode(doc.Content)
	if node == nil {
		return "", nil
	}
	return content.ToMarkdown(node), nil
}
