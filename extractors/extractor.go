package extractors

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// Extractor координирует процесс извлечения данных из staging базы данных
type Extractor struct {
	db                 *sql.DB
	logger             *utils.ETLLogger
	customerExtractor  *CustomerExtractor
	productExtractor   *ProductExtractor
	salesExtractor     *SalesExtractor
	referenceExtractor *ReferenceExtractor
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		db:                 db,
		logger:             logger,
		customerExtractor:  NewCustomerExtractor(db, logger),
		productExtractor:   NewProductExtractor(db, logger),
		salesExtractor:     NewSalesExtractor(db, logger),
		referenceExtractor: NewReferenceExtractor(db, logger),
	}
}

// Extract выполняет извлечение всех шести источников из staging
// Каждый запуск читает таблицы целиком: staging полностью перезаписывается
// внешним загрузчиком, инкрементальное извлечение не применяется
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.Info("Начало фазы Extract (Извлечение данных)")

	var extractedData models.ExtractedData
	var err error

	// Извлекаем клиентов из CRM
	extractedData.Customers, err = e.customerExtractor.ExtractCustomers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов: %v", err)
		return nil, models.NewETLError("extract", "crm_cust_info", models.ErrCodeExtractFailed, err)
	}

	// Извлекаем товары из CRM
	extractedData.Products, err = e.productExtractor.ExtractProducts()
	if err != nil {
		e.logger.Error("Ошибка при извлечении товаров: %v", err)
		return nil, models.NewETLError("extract", "crm_prd_info", models.ErrCodeExtractFailed, err)
	}

	// Извлекаем продажи из CRM
	extractedData.Sales, err = e.salesExtractor.ExtractSales()
	if err != nil {
		e.logger.Error("Ошибка при извлечении продаж: %v", err)
		return nil, models.NewETLError("extract", "crm_sales_details", models.ErrCodeExtractFailed, err)
	}

	// Извлекаем атрибуты клиентов из ERP
	extractedData.CustomerAttrs, err = e.referenceExtractor.ExtractCustomerAttrs()
	if err != nil {
		e.logger.Error("Ошибка при извлечении атрибутов клиентов: %v", err)
		return nil, models.NewETLError("extract", "erp_cust_az12", models.ErrCodeExtractFailed, err)
	}

	// Извлекаем местоположения из ERP
	extractedData.Locations, err = e.referenceExtractor.ExtractLocations()
	if err != nil {
		e.logger.Error("Ошибка при извлечении местоположений: %v", err)
		return nil, models.NewETLError("extract", "erp_loc_a101", models.ErrCodeExtractFailed, err)
	}

	// Извлекаем справочник категорий из ERP
	extractedData.Categories, err = e.referenceExtractor.ExtractCategories()
	if err != nil {
		e.logger.Error("Ошибка при извлечении категорий: %v", err)
		return nil, models.NewETLError("extract", "erp_px_cat_g1v2", models.ErrCodeExtractFailed, err)
	}

	extractedData.ExtractedAt = time.Now()

	e.logger.Info("Фаза Extract завершена. Длительность: %v", time.Since(startTime))
	e.logger.Info("Извлечено: %d клиентов, %d товаров, %d продаж, %d атрибутов, %d местоположений, %d категорий",
		len(extractedData.Customers),
		len(extractedData.Products),
		len(extractedData.Sales),
		len(extractedData.CustomerAttrs),
		len(extractedData.Locations),
		len(extractedData.Categories),
	)

	return &extractedData, nil
}
