package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTables создает таблицы журнала ETL, если они не существуют
func (r *MySQLETLLogRepository) CreateETLLogTables() error {
	runLog := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		run_id CHAR(36) PRIMARY KEY,
		layer ENUM('conformed', 'dimensional') NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		tables_processed INT DEFAULT 0,
		rows_processed INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	if _, err := r.db.Exec(runLog); err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	stageLog := `
	CREATE TABLE IF NOT EXISTS etl_stage_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		layer ENUM('conformed', 'dimensional') NOT NULL,
		table_name VARCHAR(64) NOT NULL,
		rows_read INT DEFAULT 0,
		rows_loaded INT DEFAULT 0,
		duration_seconds FLOAT,
		occurred_at TIMESTAMP NOT NULL
	);
	`

	if _, err := r.db.Exec(stageLog); err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_stage_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLETLLogRepository) CreateLogEntry(runID, layer string, startTime time.Time) error {
	query := `
	INSERT INTO etl_run_log (run_id, layer, start_time, status)
	VALUES (?, ?, ?, 'in_progress')
	`

	if _, err := r.db.Exec(query, runID, layer, startTime); err != nil {
		return fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(runID string, endTime time.Time, tablesProcessed, rowsProcessed int) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_run_log WHERE run_id = ?", runID).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE etl_run_log
	SET end_time = ?, status = 'success', tables_processed = ?,
		rows_processed = ?, execution_time_seconds = ?
	WHERE run_id = ?
	`

	if _, err := r.db.Exec(query, endTime, tablesProcessed, rowsProcessed, executionTime, runID); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(runID string, endTime time.Time, errorMessage string) error {
	query := `
	UPDATE etl_run_log
	SET end_time = ?, status = 'failed', error_message = ?
	WHERE run_id = ?
	`

	if _, err := r.db.Exec(query, endTime, errorMessage, runID); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о сбое ETL: %w", err)
	}

	return nil
}

// RecordStageEvent фиксирует событие обработки одной таблицы
func (r *MySQLETLLogRepository) RecordStageEvent(event ETLStageEvent) error {
	query := `
	INSERT INTO etl_stage_log (run_id, layer, table_name, rows_read, rows_loaded, duration_seconds, occurred_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		event.RunID,
		event.Layer,
		event.TableName,
		event.RowsRead,
		event.RowsLoaded,
		event.Duration.Seconds(),
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка при записи события этапа ETL: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске для слоя
func (r *MySQLETLLogRepository) GetLastSuccessfulRun(layer string) (*ETLRunLog, error) {
	query := `
	SELECT run_id, layer, start_time, end_time, status,
		tables_processed, rows_processed,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM etl_run_log
	WHERE status = 'success' AND layer = ?
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog ETLRunLog
	err := r.db.QueryRow(query, layer).Scan(
		&runLog.RunID,
		&runLog.Layer,
		&runLog.StartTime,
		&runLog.EndTime,
		&runLog.Status,
		&runLog.TablesProcessed,
		&runLog.RowsProcessed,
		&runLog.ErrorMessage,
		&runLog.ExecutionTimeSeconds,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Успешных запусков еще не было
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении последнего успешного запуска: %w", err)
	}

	return &runLog, nil
}

// GetRunStats получает статистику о запусках ETL за определенный период
func (r *MySQLETLLogRepository) GetRunStats(days int) ([]ETLRunLog, error) {
	query := `
	SELECT run_id, layer, start_time, IFNULL(end_time, start_time), status,
		tables_processed, rows_processed,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM etl_run_log
	WHERE start_time >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY start_time DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков ETL: %w", err)
	}
	defer rows.Close()

	var runs []ETLRunLog
	for rows.Next() {
		var runLog ETLRunLog
		if err := rows.Scan(
			&runLog.RunID,
			&runLog.Layer,
			&runLog.StartTime,
			&runLog.EndTime,
			&runLog.Status,
			&runLog.TablesProcessed,
			&runLog.RowsProcessed,
			&runLog.ErrorMessage,
			&runLog.ExecutionTimeSeconds,
		); err != nil {
			return nil, fmt.Errorf("ошибка при обработке записи журнала ETL: %w", err)
		}
		runs = append(runs, runLog)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по журналу ETL: %w", err)
	}

	return runs, nil
}
