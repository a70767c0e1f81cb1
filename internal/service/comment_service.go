package service

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/timeutil"
	"github.com/jotterhq/jotter/internal/repo"
)

const maxCommentLen = 10000

type CommentService struct {
	comments *repo.CommentRepo
	docs     *repo.DocumentRepo
	users    *repo.UserRepo
	shares   *ShareService
	sender   IEmailSender
	webURL   string
}

func NewCommentService(comments *repo.CommentRepo, docs *repo.DocumentRepo, users *repo.UserRepo,
	shares *ShareService, sender IEmailSender, webURL string) *CommentService {
	return &CommentService{
		comments: comments,
		docs:     docs,
		users:    users,
		shares:   shares,
		sender:   sender,
		webURL:   webURL,
	}
}

// ownedDoc distinguishes a missing document from one owned by someone else.
func (s *CommentService) ownedDoc(ctx context.Context, userID, docID string) (*model.Document, error) {
	doc, err := s.docs.GetByDocID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	return doc, nil
}

type CreateCommentRequest struct {
	AuthorName     string
	AuthorEmail    string
	Content        string
	SelectionStart int
	SelectionEnd   int
	SelectionText  string
}

// CreateViaShare posts a comment through a public share link. The document
// owner gets a best effort mail notification.
func (s *CommentService) CreateViaShare(ctx context.Context, token string, req CreateCommentRequest) (*model.Comment, error) {
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.Content = strings.TrimSpace(req.Content)
	if req.AuthorName == "" || req.Content == "" || len(req.Content) > maxCommentLen {
		return nil, appErr.ErrInvalid
	}
	if req.SelectionStart < 0 || req.SelectionEnd < req.SelectionStart {
		return nil, appErr.ErrInvalid
	}
	share, doc, err := s.shares.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	comment := &model.Comment{
		ID:             newID(),
		DocumentID:     doc.ID,
		ShareID:        share.ID,
		AuthorName:     req.AuthorName,
		AuthorEmail:    req.AuthorEmail,
		Content:        req.Content,
		SelectionStart: req.SelectionStart,
		SelectionEnd:   req.SelectionEnd,
		SelectionText:  req.SelectionText,
		Ctime:          now,
		Mtime:          now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.notifyOwner(ctx, doc, comment)
	return comment, nil
}

func (s *CommentService) notifyOwner(ctx context.Context, doc *model.Document, comment *model.Comment) {
	owner, err := s.users.GetByID(ctx, doc.UserID)
	if err != nil {
		logutil.GetLogger(ctx).Error("load owner for comment mail failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
		return
	}
	docURL := s.webURL + "/documents/" + doc.ID
	subject, body := buildCommentMail(doc.Title, comment.AuthorName, comment.Content, docURL)
	if err := s.sender.Send(ctx, owner.Email, subject, body); err != nil {
		logutil.GetLogger(ctx).Error("send comment mail failed",
			zap.String("comment_id", comment.ID), zap.Error(err))
	}
}

type CommentPage struct {
	Comments []model.Comment `json:"comments"`
	Total    int64           `json:"total"`
}

func (s *CommentService) List(ctx context.Context, userID, docID string, limit, offset uint) (*CommentPage, error) {
	if _, err := s.ownedDoc(ctx, userID, docID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByDocument(ctx, docID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.comments.Count(ctx, docID)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Total: total}, nil
}

// ListViaShare lets a share holder read the discussion on the document.
func (s *CommentService) ListViaShare(ctx context.Context, token string, limit, offset uint) (*CommentPage, error) {
	_, doc, err := s.shares.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByDocument(ctx, doc.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.comments.Count(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Total: total}, nil
}

func (s *CommentService) SetResolved(ctx context.Context, userID, docID, commentID string, resolved bool) error {
	if _, err := s.ownedDoc(ctx, userID, docID); err != nil {
		return err
	}
	value := 0
	if resolved {
		value = 1
	}
	return s.comments.SetResolved(ctx, docID, commentID, value, timeutil.NowUnix())
}

func (s *CommentService) Delete(ctx context.Context, userID, docID, commentID string) error {
	if _, err := s.ownedDoc(ctx, userID, docID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, docID, commentID)
}
