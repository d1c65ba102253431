package load

import (
	"database/sql"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// DDL-шаблон таблицы фактов продаж (%s заменяется именем таблицы)
// Внешние ключи объявлены NULL: строка продажи без совпадения в измерении
// сохраняется с неразрешенным ключом
const ddlFactSales = `
	CREATE TABLE IF NOT EXISTS %s (
		order_number VARCHAR(32) NOT NULL,
		product_key INT NULL,
		customer_key INT NULL,
		order_date DATE NULL,
		ship_date DATE NULL,
		due_date DATE NULL,
		sales_amount DECIMAL(12,2) NULL,
		quantity INT NOT NULL,
		price DECIMAL(12,2) NULL
	)`

// FactLoader отвечает за загрузку фактов продаж
type FactLoader struct {
	writer *snapshotWriter
	logger *utils.ETLLogger
}

// NewFactLoader создает новый экземпляр FactLoader
func NewFactLoader(db *sql.DB, logger *utils.ETLLogger, batchSize int) *FactLoader {
	return &FactLoader{
		writer: newSnapshotWriter(db, logger, batchSize),
		logger: logger,
	}
}

// LoadSalesFacts загружает факты продаж в fact_sales
func (l *FactLoader) LoadSalesFacts(facts []models.FactSale) error {
	insert := `
	INSERT INTO %s (order_number, product_key, customer_key,
		order_date, ship_date, due_date, sales_amount, quantity, price)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("fact_sales", ddlFactSales, insert,
		len(facts), func(i int) []interface{} {
			f := facts[i]
			return []interface{}{
				f.OrderNumber, f.ProductKey, f.CustomerKey,
				f.OrderDate, f.ShipDate, f.DueDate,
				f.Sales, f.Quantity, f.Price,
			}
		})
}
