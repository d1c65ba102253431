package load

import (
	"database/sql"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// DDL-шаблоны таблиц измерений (%s заменяется именем таблицы)
const (
	ddlDimCustomers = `
	CREATE TABLE IF NOT EXISTS %s (
		customer_key INT PRIMARY KEY,
		customer_id INT NOT NULL,
		customer_number VARCHAR(32) NOT NULL,
		first_name VARCHAR(64) NOT NULL,
		last_name VARCHAR(64) NOT NULL,
		country VARCHAR(64) NOT NULL,
		marital_status VARCHAR(16) NOT NULL,
		gender VARCHAR(16) NOT NULL,
		birth_date DATE NULL,
		create_date DATE NULL
	)`

	ddlDimProducts = `
	CREATE TABLE IF NOT EXISTS %s (
		product_key INT PRIMARY KEY,
		product_id INT NOT NULL,
		product_number VARCHAR(32) NOT NULL,
		product_name VARCHAR(128) NOT NULL,
		category_id VARCHAR(16) NOT NULL,
		category VARCHAR(64) NOT NULL,
		subcategory VARCHAR(64) NOT NULL,
		maintenance VARCHAR(8) NOT NULL,
		cost DECIMAL(12,2) NOT NULL,
		product_line VARCHAR(32) NOT NULL,
		start_date DATE NULL
	)`
)

// DimensionLoader отвечает за загрузку измерений звёздной схемы
type DimensionLoader struct {
	writer *snapshotWriter
	logger *utils.ETLLogger
}

// NewDimensionLoader создает новый экземпляр DimensionLoader
func NewDimensionLoader(db *sql.DB, logger *utils.ETLLogger, batchSize int) *DimensionLoader {
	return &DimensionLoader{
		writer: newSnapshotWriter(db, logger, batchSize),
		logger: logger,
	}
}

// LoadCustomerDimension загружает измерение клиентов в dim_customers
func (l *DimensionLoader) LoadCustomerDimension(customers []models.DimCustomer) error {
	insert := `
	INSERT INTO %s (customer_key, customer_id, customer_number,
		first_name, last_name, country, marital_status, gender,
		birth_date, create_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("dim_customers", ddlDimCustomers, insert,
		len(customers), func(i int) []interface{} {
			c := customers[i]
			return []interface{}{
				c.CustomerKey, c.CustomerID, c.CustomerNK,
				c.FirstName, c.LastName, c.Country, c.MaritalStatus, c.Gender,
				c.BirthDate, c.CreateDate,
			}
		})
}

// LoadProductDimension загружает измерение товаров в dim_products
func (l *DimensionLoader) LoadProductDimension(products []models.DimProduct) error {
	insert := `
	INSERT INTO %s (product_key, product_id, product_number, product_name,
		category_id, category, subcategory, maintenance,
		cost, product_line, start_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("dim_products", ddlDimProducts, insert,
		len(products), func(i int) []interface{} {
			p := products[i]
			return []interface{}{
				p.ProductKey, p.ProductID, p.ProductNumber, p.Name,
				p.CategoryID, p.Category, p.Subcategory, p.Maintenance,
				p.Cost, p.Line, p.StartDate,
			}
		})
}
