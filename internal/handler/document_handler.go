package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

const maxImportSize = 5 << 20

type DocumentHandler struct {
	docs *service.DocumentService
}

func NewDocumentHandler(docs *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

type createDocumentRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	FolderID string `json:"folder_id"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	doc, err := h.docs.Create(c.Request.Context(), getUserID(c), req.Title, req.Content, req.FolderID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	docs, err := h.docs.List(c.Request.Context(), getUserID(c), service.ListOptions{
		FolderID: c.Query("folder_id"),
		TagID:    c.Query("tag_id"),
		Pinned:   c.Query("pinned") == "true",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.docs.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

type updateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	doc, err := h.docs.Update(c.Request.Context(), getUserID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

func (h *DocumentHandler) SetPinned(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.docs.SetPinned(c.Request.Context(), getUserID(c), c.Param("id"), req.Pinned); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

type moveRequest struct {
	FolderID string `json:"folder_id"`
}

func (h *DocumentHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.docs.MoveToFolder(c.Request.Context(), getUserID(c), c.Param("id"), req.FolderID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *DocumentHandler) Trash(c *gin.Context) {
	if err := h.docs.Trash(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

type publishRequest struct {
	Annotation string `json:"annotation"`
}

func (h *DocumentHandler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	doc, ver, err := h.docs.Publish(c.Request.Context(), getUserID(c), c.Param("id"), req.Annotation)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"document": doc, "version": ver})
}

func (h *DocumentHandler) Unpublish(c *gin.Context) {
	doc, err := h.docs.Unpublish(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Preview(c *gin.Context) {
	maxElements, _ := strconv.Atoi(c.DefaultQuery("max_elements", "10"))
	elements, err := h.docs.Preview(c.Request.Context(), getUserID(c), c.Param("id"), maxElements)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, elements)
}

type importRequest struct {
	Title    string `json:"title" binding:"required"`
	FolderID string `json:"folder_id"`
	Markdown string `json:"markdown" binding:"required"`
}

func (h *DocumentHandler) ImportMarkdown(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if len(req.Markdown) > maxImportSize {
		response.Error(c, errcode.ErrInvalid, "markdown too large")
		return
	}
	doc, err := h.docs.ImportMarkdown(c.Request.Context(), getUserID(c), req.Title, req.FolderID, []byte(req.Markdown))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) ExportMarkdown(c *gin.Context) {
	md, err := h.docs.ExportMarkdown(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(c.Writer, md)
}
