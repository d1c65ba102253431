package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// ETLLogger представляет логгер для ETL-процесса
type ETLLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
	echoStdout  bool
}

// NewETLLogger создает новый экземпляр логгера для ETL
func NewETLLogger(verbose bool) *ETLLogger {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("etl_log_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	logger := NewETLLoggerWithWriter(file, verbose)
	logger.echoStdout = true
	return logger
}

// NewETLLoggerWithWriter создает логгер с произвольным приемником вывода
// Используется в тестах, чтобы не создавать лог-файлы
func NewETLLoggerWithWriter(w io.Writer, verbose bool) *ETLLogger {
	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(w, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(w, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("INFO:", msg)
	}
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("ERROR:", msg)
	}
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("DEBUG:", msg)
	}
}

// LogRunStart логирует начало запуска слоя ETL
func (l *ETLLogger) LogRunStart(runID, layer string) {
	l.Info("Запуск обновления слоя %s (run_id=%s)", layer, runID)
}

// LogRunComplete логирует успешное завершение запуска слоя ETL
func (l *ETLLogger) LogRunComplete(runID, layer string, tables, rows int, startTime time.Time) {
	l.Info("Обновление слоя %s завершено (run_id=%s). Таблиц: %d, строк: %d. Длительность: %v",
		layer, runID, tables, rows, time.Since(startTime))
}

// LogRunFailure логирует сбой запуска слоя ETL
func (l *ETLLogger) LogRunFailure(runID, layer string, err error) {
	l.Error("Обновление слоя %s прервано (run_id=%s): %v", layer, runID, err)
}

// LogStageComplete логирует завершение обработки одной таблицы
func (l *ETLLogger) LogStageComplete(table string, rowsRead, rowsLoaded int, duration time.Duration) {
	l.Info("Таблица %s обработана. Прочитано: %d, загружено: %d. Длительность: %v",
		table, rowsRead, rowsLoaded, duration)
}
