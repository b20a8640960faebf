package api

import (
	"encoding/json"
	"strconv"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const msgBodyNotJSON = "Request body must be JSON"

// ExpenseRequest 创建/更新消费记录请求；更新时只处理出现的字段
type ExpenseRequest struct {
	Title      service.Field[string]      `json:"title" swaggertype:"string" example:"Lunch"`
	Amount     service.Field[json.Number] `json:"amount" swaggertype:"number" example:"12.50"`
	Note       service.Field[string]      `json:"note" swaggertype:"string" example:"with friends"`
	Date       service.Field[string]      `json:"date" swaggertype:"string" example:"2024-01-15"`
	CategoryID service.Field[uint]        `json:"category_id" swaggertype:"integer" example:"1"`
}

func (r ExpenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		Title:      r.Title,
		Amount:     r.Amount,
		Note:       r.Note,
		Date:       r.Date,
		CategoryID: r.CategoryID,
	}
}

// CategoryRequest 创建类别请求
type CategoryRequest struct {
	Name  service.Field[string] `json:"name" swaggertype:"string" example:"Food"`
	Color service.Field[string] `json:"color" swaggertype:"string" example:"#e74c3c"`
}

func (r CategoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Color: r.Color}
}

// ExpenseListQuery 列表筛选与分页参数
type ExpenseListQuery struct {
	Year       *int  `form:"year" binding:"omitempty,min=1,max=9999"`
	Month      *int  `form:"month" binding:"omitempty,min=1,max=12"`
	CategoryID *uint `form:"category_id" binding:"omitempty,min=1"`
	Limit      *int  `form:"limit" binding:"omitempty,min=0"`
	Offset     *int  `form:"offset" binding:"omitempty,min=0"`
}

func (q ExpenseListQuery) filter() service.ExpenseFilter {
	return service.ExpenseFilter{Year: q.Year, Month: q.Month, CategoryID: q.CategoryID}
}

// SummaryQuery 汇总参数，缺省为当前年月
type SummaryQuery struct {
	Year  *int `form:"year" binding:"omitempty,min=1,max=9999"`
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
}

// bindJSONObject 请求体必须是非空 JSON 对象，然后再解码到类型化的请求结构
func bindJSONObject(c *gin.Context, dst interface{}) bool {
	var fields map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&fields, binding.JSON); err != nil || len(fields) == 0 {
		BadRequest(c, msgBodyNotJSON)
		return false
	}
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		BadRequest(c, msgBodyNotJSON)
		return false
	}
	return true
}

// bindQuery 查询参数类型或取值范围不合法时返回 400
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid query parameters"))
		return false
	}
	return true
}

// parseID 路径中的 ID 必须是正整数，否则视为资源不存在
func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		NotFound(c, resource+" not found")
		return 0, false
	}
	return uint(id), true
}
