package handler

import (
	"net/http"
	"strconv"

	"Gather_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type GatheringHandler struct {
	svc *service.GatheringService
}

// GatheringReq 创建/修改活动请求体，字段校验在 service 层统一做
type GatheringReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Localization string `json:"localization"`
	Date         string `json:"date"` // RFC 3339
	Banner       string `json:"banner"`
}

func NewGatheringHandler(svc *service.GatheringService) *GatheringHandler {
	return &GatheringHandler{svc: svc}
}

func (r *GatheringReq) toInput() service.GatheringInput {
	return service.GatheringInput{
		Title:        r.Title,
		Description:  r.Description,
		Localization: r.Localization,
		Date:         r.Date,
		Banner:       r.Banner,
	}
}

// List 全量活动列表，按时间升序分页
func (h *GatheringHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	list, err := h.svc.List(page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ListByDate 按天过滤的活动列表，date 必填
func (h *GatheringHandler) ListByDate(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	date := c.Query("date")

	list, err := h.svc.ListByDate(date, page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// MyGatherings 当前用户作为组织者的活动
func (h *GatheringHandler) MyGatherings(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	uid := userIDFromCtx(c)

	list, err := h.svc.ListByProvider(uid, page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *GatheringHandler) Create(c *gin.Context) {
	var req GatheringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)

	g, err := h.svc.Create(uid, req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GatheringHandler) Update(c *gin.Context) {
	var req GatheringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	g, err := h.svc.Update(uid, id, req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GatheringHandler) Destroy(c *gin.Context) {
	uid := userIDFromCtx(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	g, err := h.svc.Destroy(uid, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
