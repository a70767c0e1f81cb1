package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/jotterhq/jotter/internal/pkg/errcode"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

type AssetHandler struct {
	assets *service.AssetService
}

func NewAssetHandler(assets *service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

func (h *AssetHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "missing file")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "open file failed")
		return
	}
	defer f.Close()
	mimeType := fileHeader.Header.Get("Content-Type")
	asset, err := h.assets.Upload(c.Request.Context(), getUserID(c),
		fileHeader.Filename, mimeType, fileHeader.Size, f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, asset)
}

func (h *AssetHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	assets, err := h.assets.List(c.Request.Context(), getUserID(c), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, assets)
}

func (h *AssetHandler) Download(c *gin.Context) {
	asset, rc, err := h.assets.Open(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()
	c.Header("Content-Type", asset.MimeType)
	c.Header("Content-Disposition", `inline; filename="`+asset.OriginalFilename+`"`)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.assets.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}
