package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

var (
	ErrShareRevoked = fmt.Errorf("%w: share revoked", appErr.ErrForbidden)
	ErrShareExpired = fmt.Errorf("%w: share expired", appErr.ErrForbidden)
)

const (
	shareCacheSize = 4096
	shareCacheTTL  = time.Minute
)

type ShareService struct {
	shares *repo.ShareRepo
	docs   *repo.DocumentRepo
	sender IEmailSender
	webURL string

	cache *expirable.LRU[string, *model.Share]
}

func NewShareService(shares *repo.ShareRepo, docs *repo.DocumentRepo, sender IEmailSender, webURL string) *ShareService {
	return &ShareService{
		shares: shares,
		docs:   docs,
		sender: sender,
		webURL: webURL,
		cache:  expirable.NewLRU[string, *model.Share](shareCacheSize, nil, shareCacheTTL),
	}
}

func (s *ShareService) shareURL(token string) string {
	return fmt.Sprintf("%s/shared/%s", s.webURL, token)
}

// Create issues a share link for a document the caller owns. When an email
// address is given, a notification is sent best effort; a mail failure never
// fails the share.
func (s *ShareService) Create(ctx context.Context, userID, docID, email string, expiresAt int64) (*model.Share, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	if expiresAt > 0 && expiresAt <= timeutil.NowUnix() {
		return nil, appErr.ErrInvalid
	}
	share := &model.Share{
		ID:         newID(),
		DocumentID: doc.ID,
		Email:      email,
		Token:      newToken(),
		ExpiresAt:  expiresAt,
		Ctime:      timeutil.NowUnix(),
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	if email != "" {
		subject, body := buildShareMail(doc.Title, s.shareURL(share.Token))
		if err := s.sender.Send(ctx, email, subject, body); err != nil {
			logutil.GetLogger(ctx).Error("send share mail failed",
				zap.String("share_id", share.ID), zap.Error(err))
		}
	}
	return share, nil
}

func (s *ShareService) List(ctx context.Context, userID, docID string) ([]model.Share, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.shares.ListByDocument(ctx, docID)
}

func (s *ShareService) Revoke(ctx context.Context, userID, docID, shareID string) error {
	return s.setRevoked(ctx, userID, docID, shareID, 1)
}

// Unrevoke restores a previously revoked share with its original token.
// Restoring a share that is not revoked is rejected.
func (s *ShareService) Unrevoke(ctx context.Context, userID, docID, shareID string) error {
	return s.setRevoked(ctx, userID, docID, shareID, 0)
}

// setRevoked resolves the share first, then checks document ownership, so a
// caller who is not the owner sees a forbidden error rather than a not-found.
func (s *ShareService) setRevoked(ctx context.Context, userID, docID, shareID string, revoked int) error {
	share, err := s.shares.GetByID(ctx, docID, shareID)
	if err != nil {
		return err
	}
	doc, err := s.docs.GetByDocID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return appErr.ErrForbidden
	}
	if revoked == 0 && share.Revoked == 0 {
		return fmt.Errorf("%w: share is not revoked", appErr.ErrInvalid)
	}
	if err := s.shares.SetRevoked(ctx, docID, shareID, revoked); err != nil {
		return err
	}
	s.cache.Remove(share.Token)
	return nil
}

// ResolveToken validates a public token and returns the share plus the
// document it grants access to. Revoked and expired tokens are rejected
// distinctly so callers can tell the holder why the link stopped working.
func (s *ShareService) ResolveToken(ctx context.Context, token string) (*model.Share, *model.Document, error) {
	share, ok := s.cache.Get(token)
	if !ok {
		var err error
		share, err = s.shares.GetByToken(ctx, token)
		if err != nil {
			return nil, nil, err
		}
		s.cache.Add(token, share)
	}
	if share.Revoked != 0 {
		return nil, nil, ErrShareRevoked
	}
	if share.ExpiresAt > 0 && share.ExpiresAt < timeutil.NowUnix() {
		return nil, nil, ErrShareExpired
	}
	doc, err := s.docs.GetByDocID(ctx, share.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return share, doc, nil
}

// PublicView is the document as a share holder sees it: the frozen snapshot
// whenever one has been taken, the working copy only for documents that were
// never published. Keeping the snapshot after unpublish means share holders
// never see the owner's in-progress edits.
func PublicView(doc *model.Document) *model.Document {
	view := *doc
	if doc.PublishedContent != "" {
		view.Content = doc.PublishedContent
	}
	view.UserID = ""
	view.FolderID = ""
	return &view
}

// SweepExpired revokes shares whose expiry has passed and evicts their
// tokens from the cache. Returns the number of shares swept.
func (s *ShareService) SweepExpired(ctx context.Context) (int, error) {
	tokens, err := s.shares.RevokeExpired(ctx, timeutil.NowUnix())
	if err != nil {
		return 0, err
	}
	for _, token := range tokens {
		s.cache.Remove(token)
	}
	return len(tokens), nil
}
