package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DateLayout ISO-8601 日历日期格式
const DateLayout = "2006-01-02"

// Date 不含时间部分的日历日期，数据库中保存为 YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate 构造日期
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today 当前 UTC 日期
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate 严格按 YYYY-MM-DD 解析
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String 返回 YYYY-MM-DD
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// MarshalJSON 输出 "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON 读取 "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 写入数据库
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan 兼容 DATE 列（time.Time）和 TEXT 列（string/[]byte）
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("date: unsupported type %T", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDBDataType 按方言选择列类型
func (Date) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "date"
	default:
		return "text"
	}
}

// MonthRange 返回当月第一天和最后一天，两端都包含
// 上界不取下月第一天：9999 年之后的 "10000-01-01" 按文本比较会排在前面
func MonthRange(year int, month time.Month) (Date, Date) {
	start := NewDate(year, month, 1)
	return start, Date{Time: start.Time.AddDate(0, 1, -1)}
}

// YearRange 返回当年第一天和最后一天，两端都包含
func YearRange(year int) (Date, Date) {
	return NewDate(year, time.January, 1), NewDate(year, time.December, 31)
}
