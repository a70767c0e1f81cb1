package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/internal/model"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/repo"
	"github.com/jotterhq/jotter/internal/service"
	"github.com/jotterhq/jotter/test/testutil"
)

func TestShareAndCommentFlow(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	testutil.Reset(t, conn)
	ctx := context.Background()

	users := repo.NewUserRepo(conn)
	docRepo := repo.NewDocumentRepo(conn)
	auth := service.NewAuthService(users, []byte("integration-secret"), time.Hour)
	docs := service.NewDocumentService(conn, docRepo, repo.NewVersionRepo(conn),
		repo.NewFolderRepo(conn), repo.NewTagRepo(conn), users)
	shares := service.NewShareService(repo.NewShareRepo(conn), docRepo, service.NewNoopSender(), "http://test.local")
	comments := service.NewCommentService(repo.NewCommentRepo(conn), docRepo, users,
		shares, service.NewNoopSender(), "http://test.local")

	owner, err := auth.Register(ctx, "owner@test.local", "owner", "password123")
	require.NoError(t, err)
	doc, err := docs.Create(ctx, owner.ID, "shared doc", `{"type":"doc"}`, "")
	require.NoError(t, err)

	share, err := shares.Create(ctx, owner.ID, doc.ID, "friend@test.local", 0)
	require.NoError(t, err)
	require.NotEmpty(t, share.Token)

	// a valid token resolves to the document
	_, got, err := shares.ResolveToken(ctx, share.Token)
	require.NoError(t, err)
	require.Equal(t, doc.ID, got.ID)

	// the share holder can comment, the owner sees it
	comment, err := comments.CreateViaShare(ctx, share.Token, service.CreateCommentRequest{
		AuthorName:     "friend",
		AuthorEmail:    "friend@test.local",
		Content:        "nice work",
		SelectionStart: 0,
		SelectionEnd:   4,
		SelectionText:  "nice",
	})
	require.NoError(t, err)
	page, err := comments.List(ctx, owner.ID, doc.ID, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, comment.ID, page.Comments[0].ID)

	// revoking cuts access, un-revoking restores the same token
	require.NoError(t, shares.Revoke(ctx, owner.ID, doc.ID, share.ID))
	_, _, err = shares.ResolveToken(ctx, share.Token)
	require.ErrorIs(t, err, service.ErrShareRevoked)

	require.NoError(t, shares.Unrevoke(ctx, owner.ID, doc.ID, share.ID))
	_, _, err = shares.ResolveToken(ctx, share.Token)
	require.NoError(t, err)

	// resolving and deleting comments is owner only
	other, err := auth.Register(ctx, "other@test.local", "other", "password123")
	require.NoError(t, err)
	err = comments.SetResolved(ctx, other.ID, doc.ID, comment.ID, true)
	require.ErrorIs(t, err, appErr.ErrForbidden)
	require.NoError(t, comments.SetResolved(ctx, owner.ID, doc.ID, comment.ID, true))
}

func TestExpiredShareSweep(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	testutil.Reset(t, conn)
	ctx := context.Background()

	users := repo.NewUserRepo(conn)
	docRepo := repo.NewDocumentRepo(conn)
	auth := service.NewAuthService(users, []byte("integration-secret"), time.Hour)
	docs := service.NewDocumentService(conn, docRepo, repo.NewVersionRepo(conn),
		repo.NewFolderRepo(conn), repo.NewTagRepo(conn), users)
	shareRepo := repo.NewShareRepo(conn)
	shares := service.NewShareService(shareRepo, docRepo, service.NewNoopSender(), "http://test.local")

	owner, err := auth.Register(ctx, "sweep@test.local", "owner", "password123")
	require.NoError(t, err)
	doc, err := docs.Create(ctx, owner.ID, "ephemeral", "{}", "")
	require.NoError(t, err)

	// write an already-expired share directly, Create refuses past expiries
	expired := &model.Share{
		ID:         "expired-share",
		DocumentID: doc.ID,
		Token:      "expired-token-0000000000",
		ExpiresAt:  time.Now().Add(-time.Hour).Unix(),
		Ctime:      time.Now().Unix(),
	}
	require.NoError(t, shareRepo.Create(ctx, expired))

	swept, err := shares.SweepExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, swept)

	_, _, err = shares.ResolveToken(ctx, expired.Token)
	require.ErrorIs(t, err, service.ErrShareRevoked)
}
