package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type ShareHandler struct {
	shares *service.ShareService
}

func NewShareHandler(shares *service.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

type createShareRequest struct {
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

func (h *ShareHandler) Create(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	share, err := h.shares.Create(c.Request.Context(), getUserID(c), c.Param("id"), req.Email, req.ExpiresAt)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, share)
}

func (h *ShareHandler) List(c *gin.Context) {
	shares, err := h.shares.List(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, shares)
}

func (h *ShareHandler) Revoke(c *gin.Context) {
	if err := h.shares.Revoke(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("share_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *ShareHandler) Unrevoke(c *gin.Context) {
	if err := h.shares.Unrevoke(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("share_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

// Resolve is the unauthenticated entry a share link lands on.
func (h *ShareHandler) Resolve(c *gin.Context) {
	_, doc, err := h.shares.ResolveToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, service.PublicView(doc))
}
