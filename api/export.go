package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc *service.ExpenseService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{svc: service.NewExpenseService(db)}
}

// exportQuery 与列表相同的筛选条件，不分页
type exportQuery struct {
	Year       *int  `form:"year" binding:"omitempty,min=1,max=9999"`
	Month      *int  `form:"month" binding:"omitempty,min=1,max=12"`
	CategoryID *uint `form:"category_id" binding:"omitempty,min=1"`
}

func (q exportQuery) filter() service.ExpenseFilter {
	return service.ExpenseFilter{Year: q.Year, Month: q.Month, CategoryID: q.CategoryID}
}

// filename 例如 expenses_2024_01.csv
func (q exportQuery) filename(ext string) string {
	parts := []string{"expenses"}
	if q.Year != nil {
		parts = append(parts, fmt.Sprintf("%04d", *q.Year))
	}
	if q.Month != nil {
		parts = append(parts, fmt.Sprintf("%02d", *q.Month))
	}
	if q.CategoryID != nil {
		parts = append(parts, fmt.Sprintf("cat%d", *q.CategoryID))
	}
	return strings.Join(parts, "_") + "." + ext
}

// ExportCSV 导出消费记录为 CSV
// @Summary 导出消费记录为 CSV
// @Tags 导出
// @Produce text/csv
// @Param year query int false "年份"
// @Param month query int false "月份 (1-12)"
// @Param category_id query int false "类别ID"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var q exportQuery
	if !bindQuery(c, &q) {
		return
	}
	expenses, err := h.svc.All(c.Request.Context(), q.filter())
	if err != nil {
		Fail(c, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := service.WriteCSV(buf, expenses); err != nil {
		InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", q.filename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出消费记录为 Excel
// @Summary 导出消费记录为 Excel
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "年份"
// @Param month query int false "月份 (1-12)"
// @Param category_id query int false "类别ID"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var q exportQuery
	if !bindQuery(c, &q) {
		return
	}
	expenses, err := h.svc.All(c.Request.Context(), q.filter())
	if err != nil {
		Fail(c, err)
		return
	}

	f, err := service.BuildWorkbook(expenses)
	if err != nil {
		InternalError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", q.filename("xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
