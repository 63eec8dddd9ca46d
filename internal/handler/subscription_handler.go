package handler

import (
	"net/http"
	"strconv"

	"Gather_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// List 当前用户订阅的活动
func (h *SubscriptionHandler) List(c *gin.Context) {
	uid := userIDFromCtx(c)

	list, err := h.svc.ListForUser(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	uid := userIDFromCtx(c)
	gatheringID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	g, err := h.svc.Subscribe(c.Request.Context(), uid, gatheringID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	uid := userIDFromCtx(c)
	gatheringID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	g, err := h.svc.Unsubscribe(c.Request.Context(), uid, gatheringID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
