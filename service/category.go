package service

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/models"

	"gorm.io/gorm"
)

// CategoryInput 创建类别的输入
type CategoryInput struct {
	Name  Field[string]
	Color Field[string]
}

// CategoryService 消费类别
type CategoryService struct {
	db           *gorm.DB
	defaultColor string
}

// NewCategoryService 创建类别服务，defaultColor 为空时使用 models.DefaultCategoryColor
func NewCategoryService(db *gorm.DB, defaultColor string) *CategoryService {
	if defaultColor == "" {
		defaultColor = models.DefaultCategoryColor
	}
	return &CategoryService{db: db, defaultColor: defaultColor}
}

// List 按名称升序返回全部类别
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	list := make([]models.Category, 0)
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// Create 名称区分大小写且全局唯一
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if !in.Name.Valid {
		return nil, invalid("'name' is required")
	}
	name, err := ValidateName(in.Name.Value)
	if err != nil {
		return nil, err
	}

	color := s.defaultColor
	if in.Color.Set && !in.Color.Null {
		if !in.Color.Valid {
			return nil, invalid("'color' must be a 7-character hex code like #3498db")
		}
		color = in.Color.Value
	}

	var cat models.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 名称冲突优先于颜色校验
		var existing int64
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&existing).Error; err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if existing > 0 {
			return conflict("Category '%s' already exists", name)
		}
		if err := ValidateColor(color); err != nil {
			return err
		}

		cat = models.Category{Name: name, Color: color}
		if err := tx.Create(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Category '%s' already exists", name)
			}
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete 在同一事务中删除类别及其下全部消费记录
func (s *CategoryService) Delete(ctx context.Context, id uint) (*models.Category, int64, error) {
	var (
		cat     models.Category
		removed int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Category %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}

		res := tx.Where("category_id = ?", cat.ID).Delete(&models.Expense{})
		if res.Error != nil {
			return fmt.Errorf("delete category expenses: %w", res.Error)
		}
		removed = res.RowsAffected

		if err := tx.Delete(&models.Category{}, cat.ID).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &cat, removed, nil
}
