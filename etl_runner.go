package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/LilVoxy/retail_dwh/config"
	"github.com/LilVoxy/retail_dwh/extractors"
	"github.com/LilVoxy/retail_dwh/load"
	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/transform"
	"github.com/LilVoxy/retail_dwh/utils"
	"github.com/google/uuid"
)

// ETLRunner координирует обновление очищенного и дименсионального слоев хранилища
type ETLRunner struct {
	config             config.ETLConfig
	dbConnections      *config.DBConnections
	logger             *utils.ETLLogger
	extractor          *extractors.Extractor
	conformedExtractor *extractors.ConformedExtractor
	transformer        *transform.Transformer
	assembler          *transform.Assembler
	loadManager        *load.LoadManager
	etlLogRepo         *models.MySQLETLLogRepository

	// Хранилище рассчитано на единственного писателя: одновременно
	// выполняется не более одного обновления
	mu sync.Mutex
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner() (*ETLRunner, error) {
	// Получаем конфигурацию
	etlConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем журнал запусков ETL в хранилище
	etlLogRepo := models.NewMySQLETLLogRepository(connections.WarehouseDB)
	if err := etlLogRepo.CreateETLLogTables(); err != nil {
		connections.StagingDB.Close()
		connections.WarehouseDB.Close()
		return nil, fmt.Errorf("ошибка при создании таблиц журнала ETL: %w", err)
	}

	return &ETLRunner{
		config:             etlConfig,
		dbConnections:      connections,
		logger:             logger,
		extractor:          extractors.NewExtractor(connections.StagingDB, logger),
		conformedExtractor: extractors.NewConformedExtractor(connections.WarehouseDB, logger),
		transformer:        transform.NewTransformer(logger),
		assembler:          transform.NewAssembler(logger),
		loadManager:        load.NewLoadManager(connections.WarehouseDB, logger, etlConfig.BatchSize),
		etlLogRepo:         etlLogRepo,
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// RefreshConformedLayer обновляет очищенный слой: извлекает шесть
// staging-таблиц, очищает их и полностью перезаписывает очищенные таблицы
func (r *ETLRunner) RefreshConformedLayer() error {
	if !r.mu.TryLock() {
		return models.ErrRunInProgress
	}
	defer r.mu.Unlock()

	return r.refreshConformedLocked()
}

// RefreshDimensionalLayer обновляет звёздную схему из очищенного слоя.
// Требует хотя бы одного успешного обновления очищенного слоя
func (r *ETLRunner) RefreshDimensionalLayer() error {
	if !r.mu.TryLock() {
		return models.ErrRunInProgress
	}
	defer r.mu.Unlock()

	return r.refreshDimensionalLocked()
}

// ExecuteETL выполняет полный ETL процесс: очищенный слой, затем звёздная схема
func (r *ETLRunner) ExecuteETL() error {
	if !r.mu.TryLock() {
		return models.ErrRunInProgress
	}
	defer r.mu.Unlock()

	r.logger.Info("Запуск полного ETL процесса")
	startTime := time.Now()

	if err := r.refreshConformedLocked(); err != nil {
		return err
	}
	if err := r.refreshDimensionalLocked(); err != nil {
		return err
	}

	r.logger.Info("Полный ETL процесс успешно завершен. Длительность: %v", time.Since(startTime))
	return nil
}

// Status возвращает текущее состояние ETL процесса по данным журнала
func (r *ETLRunner) Status() (*models.ETLStateMonitor, error) {
	status := &models.ETLStateMonitor{}

	lastConformed, err := r.etlLogRepo.GetLastSuccessfulRun(models.LayerConformed)
	if err != nil {
		return nil, err
	}
	status.LastConformedRun = lastConformed

	lastDimensional, err := r.etlLogRepo.GetLastSuccessfulRun(models.LayerDimensional)
	if err != nil {
		return nil, err
	}
	status.LastDimensionalRun = lastDimensional

	// Пробуем захватить замок: если не получилось, обновление идет прямо сейчас
	if r.mu.TryLock() {
		r.mu.Unlock()
	} else {
		status.RunInProgress = true
	}

	return status, nil
}

// RunStats возвращает записи журнала запусков за указанный период
func (r *ETLRunner) RunStats(days int) ([]models.ETLRunLog, error) {
	return r.etlLogRepo.GetRunStats(days)
}

// refreshConformedLocked выполняет обновление очищенного слоя
// Вызывающий обязан удерживать r.mu
func (r *ETLRunner) refreshConformedLocked() error {
	runID := uuid.NewString()
	startTime := time.Now()
	r.logger.LogRunStart(runID, models.LayerConformed)

	if err := r.etlLogRepo.CreateLogEntry(runID, models.LayerConformed, startTime); err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return models.NewETLError("journal", "etl_run_log", models.ErrCodeJournalFailed, err)
	}

	// 1. Фаза извлечения данных (Extract)
	extractedData, err := r.extractor.Extract()
	if err != nil {
		r.finishRunFailure(runID, models.LayerConformed, err)
		return err
	}

	// 2. Фаза очистки и согласования (Transform)
	conformedData := r.transformer.Transform(extractedData, time.Now())

	// 3. Фаза загрузки с подменой снимков (Load)
	results, loadErr := r.loadManager.LoadConformedLayer(conformedData)

	// Фиксируем события по успешно загруженным таблицам даже при сбое:
	// подмененные таблицы уже обновлены
	rowsRead := map[string]int{
		"conformed_customers":  len(extractedData.Customers),
		"conformed_products":   len(extractedData.Products),
		"conformed_sales":      len(extractedData.Sales),
		"conformed_cust_attrs": len(extractedData.CustomerAttrs),
		"conformed_locations":  len(extractedData.Locations),
		"conformed_categories": len(extractedData.Categories),
	}
	totalRows := r.recordStageEvents(runID, models.LayerConformed, results, rowsRead)

	if loadErr != nil {
		r.finishRunFailure(runID, models.LayerConformed, loadErr)
		return loadErr
	}

	r.finishRunSuccess(runID, models.LayerConformed, len(results), totalRows, startTime)
	return nil
}

// refreshDimensionalLocked выполняет обновление звёздной схемы
// Вызывающий обязан удерживать r.mu
func (r *ETLRunner) refreshDimensionalLocked() error {
	// Предусловие: очищенный слой должен быть успешно построен хотя бы раз
	lastConformed, err := r.etlLogRepo.GetLastSuccessfulRun(models.LayerConformed)
	if err != nil {
		return models.NewETLError("journal", "etl_run_log", models.ErrCodeJournalFailed, err)
	}
	if lastConformed == nil {
		return models.NewETLError("runner", "", models.ErrCodePreconditionFailed,
			fmt.Errorf("очищенный слой еще ни разу не был успешно построен"))
	}

	runID := uuid.NewString()
	startTime := time.Now()
	r.logger.LogRunStart(runID, models.LayerDimensional)

	if err := r.etlLogRepo.CreateLogEntry(runID, models.LayerDimensional, startTime); err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return models.NewETLError("journal", "etl_run_log", models.ErrCodeJournalFailed, err)
	}

	// 1. Чтение очищенного слоя
	conformedData, err := r.conformedExtractor.Extract()
	if err != nil {
		r.finishRunFailure(runID, models.LayerDimensional, err)
		return err
	}

	// 2. Сборка звёздной схемы
	dimensionalData := r.assembler.Assemble(conformedData)

	// 3. Загрузка измерений и фактов
	results, loadErr := r.loadManager.LoadDimensionalLayer(dimensionalData)

	rowsRead := map[string]int{
		"dim_customers": len(conformedData.Customers),
		"dim_products":  len(conformedData.Products),
		"fact_sales":    len(conformedData.Sales),
	}
	totalRows := r.recordStageEvents(runID, models.LayerDimensional, results, rowsRead)

	if loadErr != nil {
		r.finishRunFailure(runID, models.LayerDimensional, loadErr)
		return loadErr
	}

	r.finishRunSuccess(runID, models.LayerDimensional, len(results), totalRows, startTime)
	return nil
}

// recordStageEvents фиксирует события обработки таблиц в журнале
// и возвращает суммарное количество загруженных строк
func (r *ETLRunner) recordStageEvents(runID, layer string, results []load.TableLoadResult, rowsRead map[string]int) int {
	totalRows := 0
	for _, result := range results {
		totalRows += result.Rows
		r.logger.LogStageComplete(result.Table, rowsRead[result.Table], result.Rows, result.Duration)

		event := models.ETLStageEvent{
			RunID:      runID,
			Layer:      layer,
			TableName:  result.Table,
			RowsRead:   rowsRead[result.Table],
			RowsLoaded: result.Rows,
			Duration:   result.Duration,
			OccurredAt: time.Now(),
		}
		if err := r.etlLogRepo.RecordStageEvent(event); err != nil {
			// Сбой записи события не прерывает обновление
			r.logger.Error("Ошибка при записи события этапа ETL: %v", err)
		}
	}
	return totalRows
}

// finishRunSuccess завершает запись журнала при успешном обновлении
func (r *ETLRunner) finishRunSuccess(runID, layer string, tables, rows int, startTime time.Time) {
	if err := r.etlLogRepo.UpdateLogEntrySuccess(runID, time.Now(), tables, rows); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
	r.logger.LogRunComplete(runID, layer, tables, rows, startTime)
}

// finishRunFailure завершает запись журнала при сбое обновления
func (r *ETLRunner) finishRunFailure(runID, layer string, runErr error) {
	if err := r.etlLogRepo.UpdateLogEntryFailure(runID, time.Now(), runErr.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
	r.logger.LogRunFailure(runID, layer, runErr)
}
