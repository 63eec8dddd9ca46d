package handler

import (
	"errors"
	"net/http"

	"Gather_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

// errStatus 业务错误到状态码的统一映射，未知错误一律 500
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrPastDate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotOrganizer):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrSlotTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"msg": err.Error()})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
