package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type FolderHandler struct {
	folders *service.FolderService
}

func NewFolderHandler(folders *service.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

type folderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

func (h *FolderHandler) Create(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	folder, err := h.folders.Create(c.Request.Context(), getUserID(c), req.ParentID, req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folder)
}

func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folders.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, folders)
}

func (h *FolderHandler) Rename(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.folders.Rename(c.Request.Context(), getUserID(c), c.Param("id"), req.Name); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *FolderHandler) Delete(c *gin.Context) {
	if err := h.folders.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
