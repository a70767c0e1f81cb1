package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/middleware"
	"github.com/jotterhq/jotter/internal/pkg/errcode"
	appErr "github.com/jotterhq/jotter/internal/pkg/errors"
	"github.com/jotterhq/jotter/internal/pkg/response"
	"github.com/jotterhq/jotter/internal/service"
)

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func pageParams(c *gin.Context) (uint, uint) {
	limit, _ := strconv.ParseUint(c.DefaultQuery("limit", "50"), 10, 32)
	offset, _ := strconv.ParseUint(c.DefaultQuery("offset", "0"), 10, 32)
	if limit == 0 || limit > 200 {
		limit = 50
	}
	return uint(limit), uint(offset)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShareRevoked):
		response.Error(c, errcode.ErrShareRevoked, "share revoked")
	case errors.Is(err, service.ErrShareExpired):
		response.Error(c, errcode.ErrShareExpired, "share expired")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, "conflict")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, errcode.ErrTooMany, "too many requests")
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
