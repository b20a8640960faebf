package service

import (
	"encoding/json"
)

// Field 请求体中的可选字段，区分“未出现”、“显式 null”和“具体值”
// 类型不匹配时不会中断整个请求体的解析，而是留给校验函数给出字段级错误
type Field[T any] struct {
	Set   bool
	Null  bool
	Valid bool
	Value T
}

// Of 构造一个已赋值的字段
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// Null 构造一个显式 null 的字段
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON 实现 json.Unmarshaler
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}
