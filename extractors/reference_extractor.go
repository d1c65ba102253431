package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// ReferenceExtractor извлекает справочные данные ERP-системы из staging БД
type ReferenceExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewReferenceExtractor создает новый экземпляр ReferenceExtractor
func NewReferenceExtractor(db *sql.DB, logger *utils.ETLLogger) *ReferenceExtractor {
	return &ReferenceExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCustomerAttrs извлекает атрибуты клиентов из erp_cust_az12
func (e *ReferenceExtractor) ExtractCustomerAttrs() ([]models.RawCustomerAttr, error) {
	e.logger.Debug("Начало извлечения атрибутов клиентов")

	rows, err := e.db.Query(`SELECT cid, bdate, gen FROM erp_cust_az12 ORDER BY cid`)
	if err != nil {
		e.logger.Error("Ошибка при извлечении атрибутов клиентов: %v", err)
		return nil, fmt.Errorf("ошибка запроса атрибутов клиентов: %w", err)
	}
	defer rows.Close()

	var attrs []models.RawCustomerAttr
	for rows.Next() {
		var attr models.RawCustomerAttr
		if err := rows.Scan(&attr.CustomerKey, &attr.BirthDate, &attr.Gender); err != nil {
			e.logger.Error("Ошибка при обработке атрибутов клиента: %v", err)
			return nil, fmt.Errorf("ошибка обработки атрибутов клиента: %w", err)
		}
		attrs = append(attrs, attr)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по атрибутам клиентов: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по атрибутам клиентов: %w", err)
	}

	e.logger.Debug("Извлечено %d записей атрибутов клиентов", len(attrs))
	return attrs, nil
}

// ExtractLocations извлекает местоположения клиентов из erp_loc_a101
func (e *ReferenceExtractor) ExtractLocations() ([]models.RawLocation, error) {
	e.logger.Debug("Начало извлечения местоположений клиентов")

	rows, err := e.db.Query(`SELECT cid, cntry FROM erp_loc_a101 ORDER BY cid`)
	if err != nil {
		e.logger.Error("Ошибка при извлечении местоположений: %v", err)
		return nil, fmt.Errorf("ошибка запроса местоположений: %w", err)
	}
	defer rows.Close()

	var locations []models.RawLocation
	for rows.Next() {
		var location models.RawLocation
		if err := rows.Scan(&location.CustomerKey, &location.Country); err != nil {
			e.logger.Error("Ошибка при обработке местоположения: %v", err)
			return nil, fmt.Errorf("ошибка обработки местоположения: %w", err)
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по местоположениям: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по местоположениям: %w", err)
	}

	e.logger.Debug("Извлечено %d записей местоположений", len(locations))
	return locations, nil
}

// ExtractCategories извлекает справочник категорий из erp_px_cat_g1v2
func (e *ReferenceExtractor) ExtractCategories() ([]models.RawCategory, error) {
	e.logger.Debug("Начало извлечения справочника категорий")

	rows, err := e.db.Query(`SELECT id, cat, subcat, maintenance FROM erp_px_cat_g1v2 ORDER BY id`)
	if err != nil {
		e.logger.Error("Ошибка при извлечении категорий: %v", err)
		return nil, fmt.Errorf("ошибка запроса категорий: %w", err)
	}
	defer rows.Close()

	var categories []models.RawCategory
	for rows.Next() {
		var category models.RawCategory
		if err := rows.Scan(
			&category.CategoryID,
			&category.Category,
			&category.Subcategory,
			&category.Maintenance,
		); err != nil {
			e.logger.Error("Ошибка при обработке категории: %v", err)
			return nil, fmt.Errorf("ошибка обработки категории: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по категориям: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по категориям: %w", err)
	}

	e.logger.Debug("Извлечено %d записей справочника категорий", len(categories))
	return categories, nil
}
