package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type VersionHandler struct {
	docs *service.DocumentService
}

func NewVersionHandler(docs *service.DocumentService) *VersionHandler {
	return &VersionHandler{docs: docs}
}

func (h *VersionHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	versions, total, err := h.docs.ListVersions(c.Request.Context(), getUserID(c), c.Param("id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"versions": versions, "total": total})
}

func (h *VersionHandler) Get(c *gin.Context) {
	ver, err := h.docs.GetVersion(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("version_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ver)
}

func (h *VersionHandler) Diff(c *gin.Context) {
	segments, err := h.docs.DiffVersion(c.Request.Context(), getUserID(c),
		c.Param("id"), c.Param("version_id"), c.Query("against"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"segments": segments})
}

func (h *VersionHandler) Restore(c *gin.Context) {
	doc, err := h.docs.RestoreVersion(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("version_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

type annotateRequest struct {
	Annotation string `json:"annotation"`
}

func (h *VersionHandler) Annotate(c *gin.Context) {
	var req annotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	err := h.docs.AnnotateVersion(c.Request.Context(), getUserID(c),
		c.Param("id"), c.Param("version_id"), req.Annotation)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
