package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// SalesExtractor извлекает строки продаж из staging БД
type SalesExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesExtractor создает новый экземпляр SalesExtractor
func NewSalesExtractor(db *sql.DB, logger *utils.ETLLogger) *SalesExtractor {
	return &SalesExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractSales извлекает все строки продаж из crm_sales_details
// Даты остаются закодированными целыми числами: их разбор выполняется
// на этапе восстановления показателей
func (e *SalesExtractor) ExtractSales() ([]models.RawSale, error) {
	e.logger.Debug("Начало извлечения строк продаж")

	query := `
		SELECT sls_ord_num, sls_prd_key, sls_cust_id,
			sls_order_dt, sls_ship_dt, sls_due_dt,
			sls_sales, sls_quantity, sls_price
		FROM crm_sales_details
		ORDER BY sls_ord_num
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении строк продаж: %v", err)
		return nil, fmt.Errorf("ошибка запроса продаж: %w", err)
	}
	defer rows.Close()

	var sales []models.RawSale
	for rows.Next() {
		var sale models.RawSale
		if err := rows.Scan(
			&sale.OrderNumber,
			&sale.ProductKey,
			&sale.CustomerID,
			&sale.OrderDateNum,
			&sale.ShipDateNum,
			&sale.DueDateNum,
			&sale.Sales,
			&sale.Quantity,
			&sale.Price,
		); err != nil {
			e.logger.Error("Ошибка при обработке строки продажи: %v", err)
			return nil, fmt.Errorf("ошибка обработки строки продажи: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по продажам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по продажам: %w", err)
	}

	e.logger.Debug("Извлечено %d строк продаж", len(sales))
	return sales, nil
}
