package api

import (
	"fmt"

	"expensetracker/config"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	svc    *service.ExpenseService
	limits config.APIConfig
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(db *gorm.DB, limits config.APIConfig) *ExpenseHandler {
	return &ExpenseHandler{svc: service.NewExpenseService(db), limits: limits}
}

// ExpenseListResponse 消费记录列表响应
type ExpenseListResponse struct {
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	Expenses []models.Expense `json:"expenses"`
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 支持按年、月、类别筛选，按日期倒序分页返回；total 为忽略分页的匹配总数
// @Tags 消费记录
// @Produce json
// @Param year query int false "年份"
// @Param month query int false "月份 (1-12)"
// @Param category_id query int false "类别ID"
// @Param limit query int false "每页数量" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} ExpenseListResponse "获取成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var q ExpenseListQuery
	if !bindQuery(c, &q) {
		return
	}

	// 默认分页参数
	limit := h.limits.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	if h.limits.MaxLimit > 0 && limit > h.limits.MaxLimit {
		limit = h.limits.MaxLimit
	}
	offset := 0
	if q.Offset != nil {
		offset = *q.Offset
	}

	page, err := h.svc.List(c.Request.Context(), q.filter(), limit, offset)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, ExpenseListResponse{
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
		Expenses: page.Expenses,
	})
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Tags 消费记录
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} models.Expense "获取成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "Expense")
	if !ok {
		return
	}
	expense, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, expense)
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description title 与 amount 必填；date 缺省为当天；category_id 必须指向已存在的类别
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 201 {object} models.Expense "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if !bindJSONObject(c, &req) {
		return
	}

	expense, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 局部更新，只修改请求体中出现的字段；category_id 传 null 表示取消类别
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param id path int true "消费记录ID"
// @Param request body ExpenseRequest true "需要修改的字段"
// @Success 200 {object} models.Expense "更新成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "记录或类别不存在"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Expense")
	if !ok {
		return
	}

	var req ExpenseRequest
	if !bindJSONObject(c, &req) {
		return
	}

	expense, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, expense)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Tags 消费记录
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Expense")
	if !ok {
		return
	}
	expense, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, MessageResponse{Message: fmt.Sprintf("Expense '%s' deleted", expense.Title)})
}
