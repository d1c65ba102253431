package transform

import (
	"sort"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// ProductDimensionProcessor отвечает за сборку измерения товаров
type ProductDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewProductDimensionProcessor создает новый экземпляр ProductDimensionProcessor
func NewProductDimensionProcessor(logger *utils.ETLLogger) *ProductDimensionProcessor {
	return &ProductDimensionProcessor{
		logger: logger,
	}
}

// ProcessProductDimension собирает измерение товаров: в него попадают только
// текущие версии (с открытой датой окончания), обогащенные справочником
// категорий через левое соединение по ключу категории. Суррогатные ключи
// назначаются в порядке (дата начала, ключ продаж) по возрастанию
func (p *ProductDimensionProcessor) ProcessProductDimension(
	products []models.ConformedProduct,
	categories []models.ConformedCategory,
) []models.DimProduct {
	p.logger.Debug("Сборка измерения товаров...")

	categoriesByID := make(map[string]models.ConformedCategory, len(categories))
	for _, category := range categories {
		categoriesByID[category.CategoryID] = category
	}

	// Только текущие версии: открытая дата окончания и есть признак текущей версии
	current := make([]models.ConformedProduct, 0, len(products))
	for _, product := range products {
		if !product.EndDate.Valid {
			current = append(current, product)
		}
	}

	// Отсутствующая дата начала считается самой ранней
	sort.SliceStable(current, func(i, j int) bool {
		si, sj := current[i].StartDate, current[j].StartDate
		if si.Valid != sj.Valid {
			return !si.Valid
		}
		if si.Valid && !si.Time.Equal(sj.Time) {
			return si.Time.Before(sj.Time)
		}
		return current[i].SalesKey < current[j].SalesKey
	})

	dimension := make([]models.DimProduct, 0, len(current))
	for i, product := range current {
		dim := models.DimProduct{
			ProductKey:    i + 1,
			ProductID:     product.ProductID,
			ProductNumber: product.SalesKey,
			Name:          product.Name,
			CategoryID:    product.CategoryKey,
			Category:      models.NotAvailable,
			Subcategory:   models.NotAvailable,
			Maintenance:   models.NotAvailable,
			Cost:          product.Cost,
			Line:          product.Line,
			StartDate:     product.StartDate,
		}

		if category, ok := categoriesByID[product.CategoryKey]; ok {
			dim.Category = category.Category
			dim.Subcategory = category.Subcategory
			dim.Maintenance = category.Maintenance
		}

		dimension = append(dimension, dim)
	}

	p.logger.Info("Измерение товаров собрано. Текущих версий: %d из %d", len(dimension), len(products))
	return dimension
}
