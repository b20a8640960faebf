package api

import (
	"fmt"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 消费类别管理
type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(db *gorm.DB, defaultColor string) *CategoryHandler {
	return &CategoryHandler{svc: service.NewCategoryService(db, defaultColor)}
}

// List 列出所有类别
// @Summary 获取消费类别列表
// @Description 按名称升序返回全部类别
// @Tags 消费类别
// @Produce json
// @Success 200 {array} models.Category "获取成功"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建消费类别
// @Description 名称必填且唯一（区分大小写）；color 缺省为 #3498db
// @Tags 消费类别
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "类别信息"
// @Success 201 {object} models.Category "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 409 {object} ErrorResponse "类别名称已存在"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if !bindJSONObject(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, cat)
}

// Delete 删除类别及其下所有消费记录
// @Summary 删除消费类别
// @Description 在同一事务中删除类别以及引用它的全部消费记录
// @Tags 消费类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Category")
	if !ok {
		return
	}
	cat, _, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, MessageResponse{Message: fmt.Sprintf("Category '%s' and its expenses deleted", cat.Name)})
}
