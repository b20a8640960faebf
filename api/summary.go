package api

import (
	"time"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler 月度汇总
type SummaryHandler struct {
	svc *service.SummaryService
	now func() time.Time
}

func NewSummaryHandler(db *gorm.DB) *SummaryHandler {
	return &SummaryHandler{svc: service.NewSummaryService(db), now: time.Now}
}

// Monthly 获取月度汇总
// @Summary 获取月度汇总
// @Description 统计指定年月的总额、按类别合计（按金额降序）以及未分类合计；缺省为当前年月
// @Tags 统计
// @Produce json
// @Param year query int false "年份"
// @Param month query int false "月份 (1-12)"
// @Success 200 {object} service.Summary "获取成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/summary [get]
func (h *SummaryHandler) Monthly(c *gin.Context) {
	var q SummaryQuery
	if !bindQuery(c, &q) {
		return
	}

	now := h.now()
	year, month := now.Year(), now.Month()
	if q.Year != nil {
		year = *q.Year
	}
	if q.Month != nil {
		month = time.Month(*q.Month)
	}

	summary, err := h.svc.Monthly(c.Request.Context(), year, month)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, summary)
}
