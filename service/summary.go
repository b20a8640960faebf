package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"expensetracker/models"

	"gorm.io/gorm"
)

// CategoryTotal 单个类别在统计周期内的合计
type CategoryTotal struct {
	CategoryID uint          `json:"category_id"`
	Category   string        `json:"category"`
	Color      string        `json:"color"`
	Total      models.Amount `json:"total"`
}

// Summary 月度汇总
// Total 恒等于 ByCategory 各项之和加 Uncategorized
type Summary struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Total         models.Amount   `json:"total"`
	ByCategory    []CategoryTotal `json:"by_category"`
	Uncategorized models.Amount   `json:"uncategorized"`
}

// SummaryService 月度汇总
type SummaryService struct {
	db *gorm.DB
}

// NewSummaryService 创建汇总服务
func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db}
}

type summaryRow struct {
	CategoryID *uint
	Amount     models.Amount
	Name       *string
	Color      *string
}

// Monthly 统计指定年月；金额在内存中用十进制累加，不依赖数据库的浮点 SUM
func (s *SummaryService) Monthly(ctx context.Context, year int, month time.Month) (*Summary, error) {
	start, end := models.MonthRange(year, month)

	var rows []summaryRow
	err := s.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.category_id, expenses.amount, categories.name, categories.color").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.date >= ? AND expenses.date <= ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summary query: %w", err)
	}

	return aggregate(year, month, rows), nil
}

func aggregate(year int, month time.Month, rows []summaryRow) *Summary {
	summary := &Summary{
		Year:       year,
		Month:      int(month),
		ByCategory: make([]CategoryTotal, 0),
	}

	index := map[uint]int{}
	for _, r := range rows {
		summary.Total = summary.Total.Add(r.Amount)
		if r.CategoryID == nil {
			summary.Uncategorized = summary.Uncategorized.Add(r.Amount)
			continue
		}
		i, ok := index[*r.CategoryID]
		if !ok {
			entry := CategoryTotal{CategoryID: *r.CategoryID}
			if r.Name != nil {
				entry.Category = *r.Name
			}
			if r.Color != nil {
				entry.Color = *r.Color
			}
			summary.ByCategory = append(summary.ByCategory, entry)
			i = len(summary.ByCategory) - 1
			index[*r.CategoryID] = i
		}
		summary.ByCategory[i].Total = summary.ByCategory[i].Total.Add(r.Amount)
	}

	sort.SliceStable(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if c := a.Total.Cmp(b.Total.Decimal); c != 0 {
			return c > 0
		}
		return a.CategoryID < b.CategoryID
	})
	return summary
}
