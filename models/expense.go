package models

import (
	"time"
)

// Expense 消费记录
type Expense struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Amount     Amount    `json:"amount" gorm:"not null"`
	Note       *string   `json:"note" gorm:"type:text"`
	Date       Date      `json:"date" gorm:"not null;index"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	Category   *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
