package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type TagHandler struct {
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type tagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	tag, err := h.tags.Create(c.Request.Context(), getUserID(c), req.Name, req.Color)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tags)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tags.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *TagHandler) ListByDocument(c *gin.Context) {
	tags, err := h.tags.ListByDocument(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, tags)
}

func (h *TagHandler) Attach(c *gin.Context) {
	if err := h.tags.Attach(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("tag_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *TagHandler) Detach(c *gin.Context) {
	if err := h.tags.Detach(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("tag_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
