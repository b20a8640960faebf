package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"expensetracker/models"

	"gorm.io/gorm"
)

// 与 models 中的列长度一致
const (
	maxTitleLen = 255
	maxNameLen  = 100
)

// ValidateTitle 去除首尾空白后不能为空，且不超过 255 个字符
func ValidateTitle(s string) (string, error) {
	title := strings.TrimSpace(s)
	if title == "" {
		return "", invalid("'title' is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", invalid("'title' must be at most %d characters", maxTitleLen)
	}
	return title, nil
}

// ValidateAmount 解析十进制金额，必须大于 0
// raw 可以是 JSON 数字的字面量，也可以是数字字符串
func ValidateAmount(raw string) (models.Amount, error) {
	amount, err := models.ParseAmount(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() || !amount.InRange() {
		return models.Amount{}, invalid("'amount' must be a positive number")
	}
	return amount, nil
}

// ValidateDate 严格按 YYYY-MM-DD 解析
func ValidateDate(raw string) (models.Date, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, invalid("'date' must be ISO format: YYYY-MM-DD")
	}
	return d, nil
}

// ValidateColor 只检查长度为 7 且以 # 开头，不校验十六进制字符
func ValidateColor(raw string) error {
	if !strings.HasPrefix(raw, "#") || utf8.RuneCountInString(raw) != 7 {
		return invalid("'color' must be a 7-character hex code like #3498db")
	}
	return nil
}

// ValidateName 类别名称去除首尾空白后不能为空，且不超过 100 个字符
func ValidateName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", invalid("'name' is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", invalid("'name' must be at most %d characters", maxNameLen)
	}
	return name, nil
}

// ValidateCategoryRef id 非空时类别必须存在
func ValidateCategoryRef(ctx context.Context, db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var cat models.Category
	err := db.WithContext(ctx).Select("id").Where("id = ?", *id).First(&cat).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound("Category %d not found", *id)
	default:
		return err
	}
}

func titleField(f Field[string], required bool) (string, error) {
	if !f.Valid {
		if required {
			return "", invalid("'title' is required")
		}
		return "", invalid("'title' cannot be empty")
	}
	title, err := ValidateTitle(f.Value)
	if err != nil && !required && strings.TrimSpace(f.Value) == "" {
		return "", invalid("'title' cannot be empty")
	}
	return title, err
}

func amountField(f Field[json.Number]) (models.Amount, error) {
	if !f.Valid {
		return models.Amount{}, invalid("'amount' must be a positive number")
	}
	return ValidateAmount(f.Value.String())
}

func dateField(f Field[string]) (models.Date, error) {
	if !f.Valid {
		return models.Date{}, invalid("'date' must be ISO format: YYYY-MM-DD")
	}
	return ValidateDate(f.Value)
}

func noteField(f Field[string]) (*string, error) {
	if f.Null {
		return nil, nil
	}
	if !f.Valid {
		return nil, invalid("'note' must be a string")
	}
	note := f.Value
	return &note, nil
}

func categoryIDField(f Field[uint]) (*uint, error) {
	if f.Null {
		return nil, nil
	}
	if !f.Valid {
		return nil, invalid("'category_id' must be a positive integer")
	}
	id := f.Value
	return &id, nil
}
