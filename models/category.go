package models

import (
	"time"
)

// DefaultCategoryColor 未指定颜色时使用
const DefaultCategoryColor = "#3498db"

// Category 消费类别
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Color     string    `json:"color" gorm:"size:7;not null"` // 颜色代码，如 #e74c3c
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 空库初始化时可选写入的默认类别
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food", Color: "#e74c3c"},
		{Name: "Transport", Color: "#3498db"},
		{Name: "Shopping", Color: "#9b59b6"},
		{Name: "Entertainment", Color: "#e91e63"},
		{Name: "Health", Color: "#2ecc71"},
		{Name: "Housing", Color: "#1abc9c"},
		{Name: "Other", Color: "#7f8c8d"},
	}
}
