package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	AuthorName     string `json:"author_name" binding:"required"`
	AuthorEmail    string `json:"author_email"`
	Content        string `json:"content" binding:"required"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
	SelectionText  string `json:"selection_text"`
}

// CreateViaShare accepts a comment from an anonymous share holder.
func (h *CommentHandler) CreateViaShare(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	comment, err := h.comments.CreateViaShare(c.Request.Context(), c.Param("token"), service.CreateCommentRequest{
		AuthorName:     req.AuthorName,
		AuthorEmail:    req.AuthorEmail,
		Content:        req.Content,
		SelectionStart: req.SelectionStart,
		SelectionEnd:   req.SelectionEnd,
		SelectionText:  req.SelectionText,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, comment)
}

func (h *CommentHandler) ListViaShare(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.comments.ListViaShare(c.Request.Context(), c.Param("token"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *CommentHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.comments.List(c.Request.Context(), getUserID(c), c.Param("id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

type resolveCommentRequest struct {
	Resolved bool `json:"resolved"`
}

func (h *CommentHandler) SetResolved(c *gin.Context) {
	var req resolveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	err := h.comments.SetResolved(c.Request.Context(), getUserID(c),
		c.Param("id"), c.Param("comment_id"), req.Resolved)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.comments.Delete(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
