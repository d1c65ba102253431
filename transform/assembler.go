package transform

import (
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// Assembler координирует сборку звёздной схемы из очищенного слоя.
// Сборка является чистым преобразованием без собственного состояния: суррогатные
// ключи зависят только от полностью материализованного очищенного слоя
type Assembler struct {
	logger            *utils.ETLLogger
	customerProcessor *CustomerDimensionProcessor
	productProcessor  *ProductDimensionProcessor
	salesProcessor    *SalesFactsProcessor
}

// NewAssembler создает новый экземпляр Assembler
func NewAssembler(logger *utils.ETLLogger) *Assembler {
	return &Assembler{
		logger:            logger,
		customerProcessor: NewCustomerDimensionProcessor(logger),
		productProcessor:  NewProductDimensionProcessor(logger),
		salesProcessor:    NewSalesFactsProcessor(logger),
	}
}

// Assemble собирает три итоговых набора: измерение клиентов, измерение
// товаров и факты продаж. Факты собираются последними: им нужны уже
// назначенные суррогатные ключи обоих измерений
func (a *Assembler) Assemble(conformedData *models.ConformedData) *models.DimensionalData {
	startTime := time.Now()
	a.logger.Info("Начало сборки звёздной схемы")

	dimensionalData := &models.DimensionalData{}

	// 1. Измерение клиентов
	a.logger.Info("Сборка измерения клиентов...")
	dimensionalData.Customers = a.customerProcessor.ProcessCustomerDimension(
		conformedData.Customers,
		conformedData.CustomerAttrs,
		conformedData.Locations,
	)

	// 2. Измерение товаров
	a.logger.Info("Сборка измерения товаров...")
	dimensionalData.Products = a.productProcessor.ProcessProductDimension(
		conformedData.Products,
		conformedData.Categories,
	)

	// 3. Факты продаж
	a.logger.Info("Сборка фактов продаж...")
	dimensionalData.Sales = a.salesProcessor.ProcessSalesFacts(
		conformedData.Sales,
		dimensionalData.Customers,
		dimensionalData.Products,
	)

	a.logger.Info("Сборка звёздной схемы завершена. Длительность: %v", time.Since(startTime))
	return dimensionalData
}
