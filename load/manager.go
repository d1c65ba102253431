package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// LoadManager отвечает за управление загрузкой данных в хранилище
type LoadManager struct {
	db              *sql.DB
	logger          *utils.ETLLogger
	conformedLoader *ConformedLoader
	dimensionLoader *DimensionLoader
	factLoader      *FactLoader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger, batchSize int) *LoadManager {
	return &LoadManager{
		db:              db,
		logger:          logger,
		conformedLoader: NewConformedLoader(db, logger, batchSize),
		dimensionLoader: NewDimensionLoader(db, logger, batchSize),
		factLoader:      NewFactLoader(db, logger, batchSize),
	}
}

// LoadConformedLayer загружает все шесть таблиц очищенного слоя.
// Таблицы подменяются по одной; при сбое загрузка прерывается, уже
// подмененные таблицы остаются обновленными, остальные сохраняют прежнее содержимое.
// Возвращает результаты по успешно загруженным таблицам
func (m *LoadManager) LoadConformedLayer(data *models.ConformedData) ([]TableLoadResult, error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка очищенного слоя)")

	var results []TableLoadResult

	steps := []struct {
		table string
		rows  int
		load  func() error
	}{
		{"conformed_customers", len(data.Customers), func() error { return m.conformedLoader.LoadCustomers(data.Customers) }},
		{"conformed_products", len(data.Products), func() error { return m.conformedLoader.LoadProducts(data.Products) }},
		{"conformed_sales", len(data.Sales), func() error { return m.conformedLoader.LoadSales(data.Sales) }},
		{"conformed_cust_attrs", len(data.CustomerAttrs), func() error { return m.conformedLoader.LoadCustomerAttrs(data.CustomerAttrs) }},
		{"conformed_locations", len(data.Locations), func() error { return m.conformedLoader.LoadLocations(data.Locations) }},
		{"conformed_categories", len(data.Categories), func() error { return m.conformedLoader.LoadCategories(data.Categories) }},
	}

	for _, step := range steps {
		stepStart := time.Now()
		if err := step.load(); err != nil {
			m.logger.Error("Ошибка при загрузке таблицы %s: %v", step.table, err)
			return results, models.NewETLError("load", step.table, models.ErrCodeLoadFailed, err)
		}
		results = append(results, TableLoadResult{
			Table:    step.table,
			Rows:     step.rows,
			Duration: time.Since(stepStart),
		})
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))
	return results, nil
}

// LoadDimensionalLayer загружает три таблицы звёздной схемы.
// Факты загружаются последними: они ссылаются на суррогатные ключи измерений
func (m *LoadManager) LoadDimensionalLayer(data *models.DimensionalData) ([]TableLoadResult, error) {
	startTime := time.Now()
	m.logger.Info("Начало загрузки звёздной схемы")

	var results []TableLoadResult

	steps := []struct {
		table string
		rows  int
		load  func() error
	}{
		{"dim_customers", len(data.Customers), func() error { return m.dimensionLoader.LoadCustomerDimension(data.Customers) }},
		{"dim_products", len(data.Products), func() error { return m.dimensionLoader.LoadProductDimension(data.Products) }},
		{"fact_sales", len(data.Sales), func() error { return m.factLoader.LoadSalesFacts(data.Sales) }},
	}

	for _, step := range steps {
		stepStart := time.Now()
		if err := step.load(); err != nil {
			m.logger.Error("Ошибка при загрузке таблицы %s: %v", step.table, err)
			return results, models.NewETLError("load", step.table, models.ErrCodeLoadFailed, err)
		}
		results = append(results, TableLoadResult{
			Table:    step.table,
			Rows:     step.rows,
			Duration: time.Since(stepStart),
		})
	}

	m.logger.Info("Загрузка звёздной схемы завершена. Длительность: %v", time.Since(startTime))
	return results, nil
}
