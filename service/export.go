package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"expensetracker/models"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "Date", "Title", "Amount", "Category", "Note", "Created At"}

func exportRow(e models.Expense) []string {
	category := ""
	if e.Category != nil {
		category = e.Category.Name
	}
	note := ""
	if e.Note != nil {
		note = *e.Note
	}
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		e.Date.String(),
		e.Title,
		e.Amount.String(),
		category,
		note,
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// WriteCSV 写出 UTF-8 CSV（带 BOM，便于 Excel 直接打开）
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := writer.Write(exportRow(e)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

const exportSheet = "Expenses"

// BuildWorkbook 生成 Excel 工作簿，最后一行为合计
func BuildWorkbook(expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	f.SetColWidth(exportSheet, "A", "A", 8)
	f.SetColWidth(exportSheet, "B", "B", 12)
	f.SetColWidth(exportSheet, "C", "C", 30)
	f.SetColWidth(exportSheet, "D", "E", 15)
	f.SetColWidth(exportSheet, "F", "F", 30)
	f.SetColWidth(exportSheet, "G", "G", 20)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(exportSheet, cell, header)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	var total models.Amount
	for i, e := range expenses {
		row := i + 2
		values := exportRow(e)
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			if col == 3 {
				// 金额写成数值单元格，便于在表格中继续计算
				amount, _ := e.Amount.Float64()
				f.SetCellValue(exportSheet, cell, amount)
				continue
			}
			f.SetCellValue(exportSheet, cell, v)
		}
		total = total.Add(e.Amount)
	}

	summaryRow := len(expenses) + 2
	totalValue, _ := total.Float64()
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(exportSheet, fmt.Sprintf("D%d", summaryRow), totalValue)
	f.SetCellValue(exportSheet, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("%d records", len(expenses)))
	f.MergeCell(exportSheet, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("G%d", summaryRow))
	f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	return f, nil
}
