package transform

import (
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// Transformer координирует очистку и согласование всех шести источников
type Transformer struct {
	logger             *utils.ETLLogger
	customerProcessor  *CustomerCleansingProcessor
	productProcessor   *ProductKeyProcessor
	salesProcessor     *SalesReconciliationProcessor
	referenceProcessor *ReferenceCleansingProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{
		logger:             logger,
		customerProcessor:  NewCustomerCleansingProcessor(logger),
		productProcessor:   NewProductKeyProcessor(logger),
		salesProcessor:     NewSalesReconciliationProcessor(logger),
		referenceProcessor: NewReferenceCleansingProcessor(logger),
	}
}

// Transform выполняет полный процесс очистки извлеченных данных.
// Преобразование детерминировано: повторный запуск на неизменных входных
// данных дает идентичный результат. Параметр now задает момент обработки
// для правил, зависящих от текущего времени
func (t *Transformer) Transform(extractedData *models.ExtractedData, now time.Time) *models.ConformedData {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Очистка и согласование данных)")

	conformedData := &models.ConformedData{}

	// 1. Очистка и дедупликация клиентов
	t.logger.Info("Очистка данных клиентов...")
	conformedData.Customers = t.customerProcessor.ProcessCustomers(extractedData.Customers)

	// 2. Вывод ключей и интервалов действия товаров
	t.logger.Info("Очистка данных товаров...")
	conformedData.Products = t.productProcessor.ProcessProducts(extractedData.Products)

	// 3. Восстановление показателей продаж
	t.logger.Info("Восстановление показателей продаж...")
	conformedData.Sales = t.salesProcessor.ProcessSales(extractedData.Sales)

	// 4. Очистка справочных данных ERP
	t.logger.Info("Очистка справочных данных ERP...")
	conformedData.CustomerAttrs = t.referenceProcessor.ProcessCustomerAttrs(extractedData.CustomerAttrs, now)
	conformedData.Locations = t.referenceProcessor.ProcessLocations(extractedData.Locations)
	conformedData.Categories = t.referenceProcessor.ProcessCategories(extractedData.Categories)

	t.logger.Info("Фаза Transform завершена. Длительность: %v", time.Since(startTime))
	return conformedData
}
