package repository

import (
	"errors"
	"fmt"
)

// ErrMissingColumn - в заголовке нет обязательной колонки
var ErrMissingColumn = errors.New("missing column")

// ErrUnsupportedSource - расширение или схема источника не поддерживается
var ErrUnsupportedSource = errors.New("unsupported source")

// ErrEmptySource - в источнике нет строки заголовка
var ErrEmptySource = errors.New("empty source")

// LoadError описывает ошибку загрузки набора данных
type LoadError struct {
	Source string
	Line   int    // 0, если ошибка не относится к строке
	Column string // пусто, если ошибка не относится к колонке
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("load %s: line %d, column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RowIssue - значение, которое не удалось разобрать. Строка все равно
// попадает в результат, а значение становится NaN.
type RowIssue struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
	// Reason - причина, если значение разобрано, но строка некорректна
	Reason string `json:"reason,omitempty"`
}

func (i RowIssue) String() string {
	if i.Reason != "" {
		return fmt.Sprintf("line %d: %s", i.Line, i.Reason)
	}
	return fmt.Sprintf("line %d: %s=%q is not a number", i.Line, i.Column, i.Value)
}

// LoadResult - строки набора данных и найденные в них проблемы
type LoadResult[T any] struct {
	Source string
	Rows   []T
	Issues []RowIssue
}
