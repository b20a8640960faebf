package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"expensetracker/models"

	"gorm.io/gorm"
)

// ExpenseFilter 列表筛选条件，各条件之间为 AND 关系
type ExpenseFilter struct {
	Year       *int
	Month      *int
	CategoryID *uint
}

// ExpensePage 分页结果，Total 为忽略分页后的匹配总数
type ExpensePage struct {
	Total    int64
	Limit    int
	Offset   int
	Expenses []models.Expense
}

// ExpenseInput 创建/更新消费记录的输入，字段均可能缺省
type ExpenseInput struct {
	Title      Field[string]
	Amount     Field[json.Number]
	Note       Field[string]
	Date       Field[string]
	CategoryID Field[uint]
}

// ExpenseService 消费记录
type ExpenseService struct {
	db *gorm.DB
}

// NewExpenseService 创建消费记录服务
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// List 按条件分页查询，按日期倒序，同一天内后创建的在前
func (s *ExpenseService) List(ctx context.Context, filter ExpenseFilter, limit, offset int) (*ExpensePage, error) {
	query := applyExpenseFilter(s.db.WithContext(ctx).Model(&models.Expense{}), filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}

	expenses := make([]models.Expense, 0)
	if err := query.Preload("Category").
		Order("expenses.date DESC, expenses.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return &ExpensePage{
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		Expenses: expenses,
	}, nil
}

// All 不分页地返回全部匹配记录，供导出使用
func (s *ExpenseService) All(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	err := applyExpenseFilter(s.db.WithContext(ctx).Model(&models.Expense{}), filter).
		Preload("Category").
		Order("expenses.date DESC, expenses.id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Get 按 ID 获取
func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	return findExpense(s.db.WithContext(ctx), id)
}

// Create 校验并创建；未提供日期时使用当天
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	title, err := titleField(in.Title, true)
	if err != nil {
		return nil, err
	}
	amount, err := amountField(in.Amount)
	if err != nil {
		return nil, err
	}
	date := models.Today()
	if in.Date.Set {
		if date, err = dateField(in.Date); err != nil {
			return nil, err
		}
	}
	var note *string
	if in.Note.Set {
		if note, err = noteField(in.Note); err != nil {
			return nil, err
		}
	}
	var categoryID *uint
	if in.CategoryID.Set {
		if categoryID, err = categoryIDField(in.CategoryID); err != nil {
			return nil, err
		}
	}

	expense := models.Expense{
		Title:      title,
		Amount:     amount,
		Note:       note,
		Date:       date,
		CategoryID: categoryID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ValidateCategoryRef(ctx, tx, categoryID); err != nil {
			return err
		}
		if err := tx.Create(&expense).Error; err != nil {
			return translateExpenseWrite(err, categoryID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, expense.ID)
}

// Update 局部更新：只修改请求体中出现的字段，校验规则与创建相同
func (s *ExpenseService) Update(ctx context.Context, id uint, in ExpenseInput) (*models.Expense, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expense, err := findExpense(tx, id)
		if err != nil {
			return err
		}
		updates, categoryID, err := expenseUpdates(in)
		if err != nil {
			return err
		}
		if err := ValidateCategoryRef(ctx, tx, categoryID); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(expense).Updates(updates).Error; err != nil {
			return translateExpenseWrite(err, categoryID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// expenseUpdates 把出现的字段转换为列更新，categoryID 为需要校验的新类别
func expenseUpdates(in ExpenseInput) (map[string]interface{}, *uint, error) {
	updates := map[string]interface{}{}

	if in.Title.Set {
		title, err := titleField(in.Title, false)
		if err != nil {
			return nil, nil, err
		}
		updates["title"] = title
	}
	if in.Amount.Set {
		amount, err := amountField(in.Amount)
		if err != nil {
			return nil, nil, err
		}
		updates["amount"] = amount
	}
	if in.Note.Set {
		note, err := noteField(in.Note)
		if err != nil {
			return nil, nil, err
		}
		updates["note"] = note
	}
	if in.Date.Set {
		date, err := dateField(in.Date)
		if err != nil {
			return nil, nil, err
		}
		updates["date"] = date
	}
	var categoryID *uint
	if in.CategoryID.Set {
		cid, err := categoryIDField(in.CategoryID)
		if err != nil {
			return nil, nil, err
		}
		categoryID = cid
		updates["category_id"] = cid
	}
	return updates, categoryID, nil
}

// Delete 删除并返回被删除的记录
func (s *ExpenseService) Delete(ctx context.Context, id uint) (*models.Expense, error) {
	var deleted *models.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expense, err := findExpense(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Expense{}, expense.ID).Error; err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		deleted = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findExpense(db *gorm.DB, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := db.Preload("Category").Where("expenses.id = ?", id).First(&expense).Error
	switch {
	case err == nil:
		return &expense, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound("Expense %d not found", id)
	default:
		return nil, fmt.Errorf("get expense: %w", err)
	}
}

// translateExpenseWrite 并发删除类别时外键约束会拒绝写入，视为类别不存在
func translateExpenseWrite(err error, categoryID *uint) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) && categoryID != nil {
		return notFound("Category %d not found", *categoryID)
	}
	return fmt.Errorf("save expense: %w", err)
}

func applyExpenseFilter(q *gorm.DB, filter ExpenseFilter) *gorm.DB {
	q = applyPeriod(q, filter.Year, filter.Month)
	if filter.CategoryID != nil {
		q = q.Where("expenses.category_id = ?", *filter.CategoryID)
	}
	return q
}

// applyPeriod 年月同时给出时按闭区间过滤，只给月份时匹配所有年份的该月
func applyPeriod(q *gorm.DB, year, month *int) *gorm.DB {
	switch {
	case year != nil && month != nil:
		start, end := models.MonthRange(*year, time.Month(*month))
		return q.Where("expenses.date >= ? AND expenses.date <= ?", start, end)
	case year != nil:
		start, end := models.YearRange(*year)
		return q.Where("expenses.date >= ? AND expenses.date <= ?", start, end)
	case month != nil:
		return q.Where(monthExpr(q)+" = ?", *month)
	default:
		return q
	}
}

func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "MONTH(expenses.date)"
	}
	return "CAST(substr(expenses.date, 6, 2) AS INTEGER)"
}
