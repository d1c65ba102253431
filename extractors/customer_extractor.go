package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// CustomerExtractor извлекает данные о клиентах из staging БД
type CustomerExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerExtractor создает новый экземпляр CustomerExtractor
func NewCustomerExtractor(db *sql.DB, logger *utils.ETLLogger) *CustomerExtractor {
	return &CustomerExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCustomers извлекает все записи клиентов из crm_cust_info
// Порядок сортировки задан до отдельной строки: один только cst_id не уникален,
// и порядок дубликатов мог бы меняться от запуска к запуску
func (e *CustomerExtractor) ExtractCustomers() ([]models.RawCustomer, error) {
	e.logger.Debug("Начало извлечения данных о клиентах")

	query := `
		SELECT cst_id, cst_key, cst_firstname, cst_lastname,
			cst_marital_status, cst_gndr, cst_create_date
		FROM crm_cust_info
		ORDER BY cst_id, cst_create_date, cst_key
	`

	rows, err := e.db.Query(query)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о клиентах: %v", err)
		return nil, fmt.Errorf("ошибка запроса клиентов: %w", err)
	}
	defer rows.Close()

	var customers []models.RawCustomer
	for rows.Next() {
		var customer models.RawCustomer
		if err := rows.Scan(
			&customer.CustomerID,
			&customer.CustomerKey,
			&customer.FirstName,
			&customer.LastName,
			&customer.MaritalStatus,
			&customer.Gender,
			&customer.CreateDate,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных клиента: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных клиента: %w", err)
		}
		customers = append(customers, customer)
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по клиентам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по клиентам: %w", err)
	}

	e.logger.Debug("Извлечено %d клиентов", len(customers))
	return customers, nil
}
