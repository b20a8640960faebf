package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Amount 精确十进制金额
// 数据库中以文本形式保存，读写都不经过浮点数，避免舍入误差
type Amount struct {
	decimal.Decimal
}

// 金额的精度上限，保证规范化字符串能放进 varchar(64)
const (
	MaxAmountScale     = 18
	MaxAmountIntDigits = 30
)

// NewAmount 包装 decimal.Decimal
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// ParseAmount 解析十进制字符串，如 "12.50"
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// MustParseAmount 用于常量和测试
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// InRange 小数位不超过 MaxAmountScale 且整数位不超过 MaxAmountIntDigits
// 只看系数和指数，不展开成字符串，1e2000000 之类的输入也能立即判断
func (a Amount) InRange() bool {
	exp := a.Decimal.Exponent()
	if exp < -MaxAmountScale {
		return false
	}
	return int64(a.Decimal.NumDigits())+int64(exp) <= MaxAmountIntDigits
}

// Add 返回 a+b
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// MarshalJSON 输出为 JSON 数字（不加引号），保留全部有效位
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Value 写入数据库时使用规范化的十进制字符串
func (a Amount) Value() (driver.Value, error) {
	return a.Decimal.String(), nil
}

// Scan 兼容 TEXT/DECIMAL 列返回的 string、[]byte 以及数值类型
func (a *Amount) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("amount: cannot scan NULL")
	}
	return a.Decimal.Scan(value)
}

// GormDBDataType 按方言选择列类型
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "varchar(64)"
	default:
		return "text"
	}
}
