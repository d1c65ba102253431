package models

import (
	"errors"
	"fmt"
)

// ErrRunInProgress возвращается при попытке запустить обновление,
// пока предыдущее еще не завершилось: хранилище рассчитано на
// единственного писателя
var ErrRunInProgress = errors.New("обновление уже выполняется")

// Коды ошибок ETL-процесса
const (
	ErrCodeExtractFailed      = "extract_failed"
	ErrCodeTransformFailed    = "transform_failed"
	ErrCodeLoadFailed         = "load_failed"
	ErrCodeJournalFailed      = "journal_failed"
	ErrCodePreconditionFailed = "precondition_failed"
)

// ETLError представляет структурированную ошибку ETL-процесса:
// этап, таблица и код позволяют определить место сбоя без разбора текста
type ETLError struct {
	Stage string // 'extract', 'transform', 'load', 'journal', 'runner'
	Table string // имя обрабатываемой таблицы, если применимо
	Code  string
	Err   error
}

// Error возвращает текстовое представление ошибки
func (e *ETLError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("этап %s, таблица %s [%s]: %v", e.Stage, e.Table, e.Code, e.Err)
	}
	return fmt.Sprintf("этап %s [%s]: %v", e.Stage, e.Code, e.Err)
}

// Unwrap возвращает исходную ошибку
func (e *ETLError) Unwrap() error {
	return e.Err
}

// NewETLError создает новую структурированную ошибку ETL
func NewETLError(stage, table, code string, err error) *ETLError {
	return &ETLError{
		Stage: stage,
		Table: table,
		Code:  code,
		Err:   err,
	}
}
