package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/retail_dwh/utils"
)

// TableLoadResult описывает результат загрузки одной таблицы хранилища
type TableLoadResult struct {
	Table    string
	Rows     int
	Duration time.Duration
}

// rowBinder возвращает аргументы вставки для строки с индексом i
type rowBinder func(i int) []interface{}

// snapshotWriter реализует полную перезапись таблицы через двухфазную
// подмену снимка: строки вставляются в таблицу <имя>_new, после чего она
// атомарно переименовывается на место целевой. Читатели никогда не видят
// наполовину перестроенную таблицу
type snapshotWriter struct {
	db        *sql.DB
	logger    *utils.ETLLogger
	batchSize int
}

// newSnapshotWriter создает новый экземпляр snapshotWriter
func newSnapshotWriter(db *sql.DB, logger *utils.ETLLogger, batchSize int) *snapshotWriter {
	if batchSize <= 0 {
		batchSize = 10000
	}
	return &snapshotWriter{
		db:        db,
		logger:    logger,
		batchSize: batchSize,
	}
}

// loadSnapshot загружает rowCount строк в таблицу table
// ddl: шаблон CREATE TABLE с %s вместо имени таблицы,
// insertSQL: шаблон INSERT с %s вместо имени таблицы
func (w *snapshotWriter) loadSnapshot(table, ddl, insertSQL string, rowCount int, bind rowBinder) error {
	startTime := time.Now()
	w.logger.Debug("Начало загрузки снимка таблицы %s (строк: %d)", table, rowCount)

	// Гарантируем существование целевой таблицы: при первом запуске
	// подменять еще нечего
	if _, err := w.db.Exec(fmt.Sprintf(ddl, table)); err != nil {
		return fmt.Errorf("ошибка при создании таблицы %s: %w", table, err)
	}

	// Пересоздаем таблицу снимка
	newTable := table + "_new"
	if _, err := w.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", newTable)); err != nil {
		return fmt.Errorf("ошибка при удалении старого снимка %s: %w", newTable, err)
	}
	if _, err := w.db.Exec(fmt.Sprintf(ddl, newTable)); err != nil {
		return fmt.Errorf("ошибка при создании снимка %s: %w", newTable, err)
	}

	// Вставляем строки пакетами: промежуточные фиксации не видны читателям,
	// так как запись идет в таблицу снимка
	if err := w.insertRows(newTable, insertSQL, rowCount, bind); err != nil {
		return err
	}

	// Атомарная подмена снимка
	oldTable := table + "_old"
	if _, err := w.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", oldTable)); err != nil {
		return fmt.Errorf("ошибка при удалении таблицы %s: %w", oldTable, err)
	}
	swap := fmt.Sprintf("RENAME TABLE %s TO %s, %s TO %s", table, oldTable, newTable, table)
	if _, err := w.db.Exec(swap); err != nil {
		return fmt.Errorf("ошибка при подмене таблицы %s: %w", table, err)
	}
	if _, err := w.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", oldTable)); err != nil {
		return fmt.Errorf("ошибка при удалении предыдущего снимка %s: %w", oldTable, err)
	}

	w.logger.Debug("Снимок таблицы %s загружен. Длительность: %v", table, time.Since(startTime))
	return nil
}

// insertRows вставляет строки в таблицу снимка пакетами по batchSize
func (w *snapshotWriter) insertRows(table, insertSQL string, rowCount int, bind rowBinder) error {
	query := fmt.Sprintf(insertSQL, table)

	for offset := 0; offset < rowCount; offset += w.batchSize {
		end := offset + w.batchSize
		if end > rowCount {
			end = rowCount
		}

		tx, err := w.db.Begin()
		if err != nil {
			return fmt.Errorf("ошибка при начале транзакции для %s: %w", table, err)
		}

		stmt, err := tx.Prepare(query)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при подготовке запроса для %s: %w", table, err)
		}

		for i := offset; i < end; i++ {
			if _, err := stmt.Exec(bind(i)...); err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("ошибка при вставке строки %d в %s: %w", i, table, err)
			}
		}

		stmt.Close()
		if err := tx.Commit(); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при фиксации транзакции для %s: %w", table, err)
		}

		w.logger.Debug("Загружено %d из %d строк в %s...", end, rowCount, table)
	}

	return nil
}
