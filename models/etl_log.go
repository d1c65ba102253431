package models

import (
	"time"
)

// Слои ETL-процесса, фиксируемые в журнале запусков
const (
	LayerConformed   = "conformed"
	LayerDimensional = "dimensional"
)

// Статусы запуска ETL
const (
	RunStatusInProgress = "in_progress"
	RunStatusSuccess    = "success"
	RunStatusFailed     = "failed"
)

// ETLRunLog представляет запись о запуске ETL процесса
type ETLRunLog struct {
	RunID                string    `json:"run_id"`
	Layer                string    `json:"layer"` // "conformed" или "dimensional"
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	TablesProcessed      int       `json:"tables_processed"`
	RowsProcessed        int       `json:"rows_processed"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// ETLStageEvent представляет структурированное событие обработки одной таблицы
type ETLStageEvent struct {
	RunID      string        `json:"run_id"`
	Layer      string        `json:"layer"`
	TableName  string        `json:"table_name"`
	RowsRead   int           `json:"rows_read"`
	RowsLoaded int           `json:"rows_loaded"`
	Duration   time.Duration `json:"duration"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// ETLLogRepository представляет репозиторий для работы с журналом ETL
type ETLLogRepository interface {
	// CreateLogEntry создает новую запись о запуске ETL для указанного слоя
	CreateLogEntry(runID, layer string, startTime time.Time) error

	// UpdateLogEntrySuccess обновляет запись при успешном завершении
	UpdateLogEntrySuccess(runID string, endTime time.Time, tablesProcessed, rowsProcessed int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении
	UpdateLogEntryFailure(runID string, endTime time.Time, errorMessage string) error

	// RecordStageEvent фиксирует событие обработки одной таблицы
	RecordStageEvent(event ETLStageEvent) error

	// GetLastSuccessfulRun получает последний успешный запуск для слоя
	GetLastSuccessfulRun(layer string) (*ETLRunLog, error)

	// GetRunStats получает статистику запусков за указанное количество дней
	GetRunStats(days int) ([]ETLRunLog, error)
}

// ETLStateMonitor предоставляет информацию о текущем состоянии ETL процесса
type ETLStateMonitor struct {
	LastConformedRun   *ETLRunLog `json:"last_conformed_run,omitempty"`
	LastDimensionalRun *ETLRunLog `json:"last_dimensional_run,omitempty"`
	RunInProgress      bool       `json:"run_in_progress"`
}
