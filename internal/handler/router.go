package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/middleware"
	"github.com/jotterhq/jotter/internal/service"
)

type RouterDeps struct {
	JWTSecret []byte
	Auth      *service.AuthService
	Documents *service.DocumentService
	Folders   *service.FolderService
	Tags      *service.TagService
	Shares    *service.ShareService
	Comments  *service.CommentService
	Assets    *service.AssetService
}

// RegisterRoutes wires the API surface onto the engine group.
func RegisterRoutes(gr *gin.RouterGroup, deps *RouterDeps) {
	authHandler := NewAuthHandler(deps.Auth)
	docHandler := NewDocumentHandler(deps.Documents)
	verHandler := NewVersionHandler(deps.Documents)
	folderHandler := NewFolderHandler(deps.Folders)
	tagHandler := NewTagHandler(deps.Tags)
	shareHandler := NewShareHandler(deps.Shares)
	commentHandler := NewCommentHandler(deps.Comments)
	assetHandler := NewAssetHandler(deps.Assets)

	gr.POST("/auth/register", authHandler.Register)
	gr.POST("/auth/login", authHandler.Login)

	// public share routes, token is the only credential
	public := gr.Group("/shared", middleware.RateLimit(5, 20))
	public.GET("/:token", shareHandler.Resolve)
	public.GET("/:token/comments", commentHandler.ListViaShare)
	public.POST("/:token/comments", commentHandler.CreateViaShare)

	authed := gr.Group("", middleware.JWTAuth(deps.JWTSecret))
	authed.GET("/auth/me", authHandler.Me)

	authed.POST("/documents", docHandler.Create)
	authed.GET("/documents", docHandler.List)
	authed.POST("/documents/import", docHandler.ImportMarkdown)
	authed.GET("/documents/:id", docHandler.Get)
	authed.PUT("/documents/:id", docHandler.Update)
	authed.DELETE("/documents/:id", docHandler.Trash)
	authed.PUT("/documents/:id/pin", docHandler.SetPinned)
	authed.PUT("/documents/:id/folder", docHandler.Move)
	authed.POST("/documents/:id/publish", docHandler.Publish)
	authed.POST("/documents/:id/unpublish", docHandler.Unpublish)
	authed.GET("/documents/:id/preview", docHandler.Preview)
	authed.GET("/documents/:id/export", docHandler.ExportMarkdown)

	authed.GET("/documents/:id/versions", verHandler.List)
	authed.GET("/documents/:id/versions/:version_id", verHandler.Get)
	authed.GET("/documents/:id/versions/:version_id/diff", verHandler.Diff)
	authed.POST("/documents/:id/versions/:version_id/restore", verHandler.Restore)
	authed.PUT("/documents/:id/versions/:version_id/annotation", verHandler.Annotate)

	authed.POST("/folders", folderHandler.Create)
	authed.GET("/folders", folderHandler.List)
	authed.PUT("/folders/:id", folderHandler.Rename)
	authed.DELETE("/folders/:id", folderHandler.Delete)

	authed.POST("/tags", tagHandler.Create)
	authed.GET("/tags", tagHandler.List)
	authed.DELETE("/tags/:id", tagHandler.Delete)
	authed.GET("/documents/:id/tags", tagHandler.ListByDocument)
	authed.PUT("/documents/:id/tags/:tag_id", tagHandler.Attach)
	authed.DELETE("/documents/:id/tags/:tag_id", tagHandler.Detach)

	authed.POST("/documents/:id/shares", shareHandler.Create)
	authed.GET("/documents/:id/shares", shareHandler.List)
	authed.POST("/documents/:id/shares/:share_id/revoke", shareHandler.Revoke)
	authed.POST("/documents/:id/shares/:share_id/unrevoke", shareHandler.Unrevoke)

	authed.GET("/documents/:id/comments", commentHandler.List)
	authed.PUT("/documents/:id/comments/:comment_id/resolve", commentHandler.SetResolved)
	authed.DELETE("/documents/:id/comments/:comment_id", commentHandler.Delete)

	authed.POST("/assets", assetHandler.Upload)
	authed.GET("/assets", assetHandler.List)
	authed.GET("/assets/:id", assetHandler.Download)
	authed.DELETE("/assets/:id", assetHandler.Delete)
}
