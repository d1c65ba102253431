package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// ProductExtractor извлекает данные о товарах из staging БД
type ProductExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductExtractor создает новый экземпляр ProductExtractor
func NewProductExtractor(db *sql.DB, logger *utils.ETLLogger) *ProductExtractor {
	return &ProductExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractProducts извлекает все версии товаров из crm_prd_info
func (e *ProductExtractor) ExtractProducts() ([]models.RawProduct, error) {
	e.logger.Debug("Начало извлечения данных о товарах")

	query := `
		SELECT prd_id, prd_key, prd_nm, prd_cost, prd_line, prd_start_dt, prd_end_dt
		FROM crm_prd_info
		ORDER BY prd_id
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о товарах: %v", err)
		return nil, fmt.Errorf("ошибка запроса товаров: %w", err)
	}
	defer rows.Close()

	var products []models.RawProduct
	for rows.Next() {
		var product models.RawProduct
		if err := rows.Scan(
			&product.ProductID,
			&product.ProductKey,
			&product.Name,
			&product.Cost,
			&product.Line,
			&product.StartDate,
			&product.EndDate,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных товара: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных товара: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по товарам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по товарам: %w", err)
	}

	e.logger.Debug("Извлечено %d версий товаров", len(products))
	return products, nil
}
