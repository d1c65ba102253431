package load

import (
	"database/sql"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// DDL-шаблоны таблиц очищенного слоя (%s заменяется именем таблицы)
const (
	ddlConformedCustomers = `
	CREATE TABLE IF NOT EXISTS %s (
		customer_id INT PRIMARY KEY,
		customer_key VARCHAR(32) NOT NULL,
		first_name VARCHAR(64) NOT NULL,
		last_name VARCHAR(64) NOT NULL,
		marital_status VARCHAR(16) NOT NULL,
		gender VARCHAR(16) NOT NULL,
		create_date DATE NULL
	)`

	ddlConformedProducts = `
	CREATE TABLE IF NOT EXISTS %s (
		product_id INT PRIMARY KEY,
		category_key VARCHAR(16) NOT NULL,
		sales_key VARCHAR(32) NOT NULL,
		product_name VARCHAR(128) NOT NULL,
		cost DECIMAL(12,2) NOT NULL,
		product_line VARCHAR(32) NOT NULL,
		start_date DATE NULL,
		end_date DATE NULL
	)`

	ddlConformedSales = `
	CREATE TABLE IF NOT EXISTS %s (
		order_number VARCHAR(32) NOT NULL,
		sales_key VARCHAR(32) NOT NULL,
		customer_id INT NOT NULL,
		order_date DATE NULL,
		ship_date DATE NULL,
		due_date DATE NULL,
		sales_amount DECIMAL(12,2) NULL,
		quantity INT NOT NULL,
		price DECIMAL(12,2) NULL
	)`

	ddlConformedCustAttrs = `
	CREATE TABLE IF NOT EXISTS %s (
		customer_key VARCHAR(32) NOT NULL,
		birth_date DATE NULL,
		gender VARCHAR(16) NOT NULL
	)`

	ddlConformedLocations = `
	CREATE TABLE IF NOT EXISTS %s (
		customer_key VARCHAR(32) NOT NULL,
		country VARCHAR(64) NOT NULL
	)`

	ddlConformedCategories = `
	CREATE TABLE IF NOT EXISTS %s (
		category_id VARCHAR(16) NOT NULL,
		category VARCHAR(64) NOT NULL,
		subcategory VARCHAR(64) NOT NULL,
		maintenance VARCHAR(8) NOT NULL
	)`
)

// ConformedLoader отвечает за загрузку очищенного слоя в хранилище
type ConformedLoader struct {
	writer *snapshotWriter
	logger *utils.ETLLogger
}

// NewConformedLoader создает новый экземпляр ConformedLoader
func NewConformedLoader(db *sql.DB, logger *utils.ETLLogger, batchSize int) *ConformedLoader {
	return &ConformedLoader{
		writer: newSnapshotWriter(db, logger, batchSize),
		logger: logger,
	}
}

// LoadCustomers загружает очищенных клиентов в conformed_customers
func (l *ConformedLoader) LoadCustomers(customers []models.ConformedCustomer) error {
	insert := `
	INSERT INTO %s (customer_id, customer_key, first_name, last_name,
		marital_status, gender, create_date)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("conformed_customers", ddlConformedCustomers, insert,
		len(customers), func(i int) []interface{} {
			c := customers[i]
			return []interface{}{
				c.CustomerID, c.CustomerKey, c.FirstName, c.LastName,
				c.MaritalStatus, c.Gender, c.CreateDate,
			}
		})
}

// LoadProducts загружает очищенные версии товаров в conformed_products
func (l *ConformedLoader) LoadProducts(products []models.ConformedProduct) error {
	insert := `
	INSERT INTO %s (product_id, category_key, sales_key, product_name,
		cost, product_line, start_date, end_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("conformed_products", ddlConformedProducts, insert,
		len(products), func(i int) []interface{} {
			p := products[i]
			return []interface{}{
				p.ProductID, p.CategoryKey, p.SalesKey, p.Name,
				p.Cost, p.Line, p.StartDate, p.EndDate,
			}
		})
}

// LoadSales загружает восстановленные продажи в conformed_sales
func (l *ConformedLoader) LoadSales(sales []models.ConformedSale) error {
	insert := `
	INSERT INTO %s (order_number, sales_key, customer_id,
		order_date, ship_date, due_date, sales_amount, quantity, price)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return l.writer.loadSnapshot("conformed_sales", ddlConformedSales, insert,
		len(sales), func(i int) []interface{} {
			s := sales[i]
			return []interface{}{
				s.OrderNumber, s.ProductKey, s.CustomerID,
				s.OrderDate, s.ShipDate, s.DueDate,
				s.Sales, s.Quantity, s.Price,
			}
		})
}

// LoadCustomerAttrs загружает очищенные атрибуты клиентов в conformed_cust_attrs
func (l *ConformedLoader) LoadCustomerAttrs(attrs []models.ConformedCustomerAttr) error {
	insert := `
	INSERT INTO %s (customer_key, birth_date, gender)
	VALUES (?, ?, ?)`

	return l.writer.loadSnapshot("conformed_cust_attrs", ddlConformedCustAttrs, insert,
		len(attrs), func(i int) []interface{} {
			a := attrs[i]
			return []interface{}{a.CustomerKey, a.BirthDate, a.Gender}
		})
}

// LoadLocations загружает очищенные местоположения в conformed_locations
func (l *ConformedLoader) LoadLocations(locations []models.ConformedLocation) error {
	insert := `
	INSERT INTO %s (customer_key, country)
	VALUES (?, ?)`

	return l.writer.loadSnapshot("conformed_locations", ddlConformedLocations, insert,
		len(locations), func(i int) []interface{} {
			loc := locations[i]
			return []interface{}{loc.CustomerKey, loc.Country}
		})
}

// LoadCategories загружает справочник категорий в conformed_categories
func (l *ConformedLoader) LoadCategories(categories []models.ConformedCategory) error {
	insert := `
	INSERT INTO %s (category_id, category, subcategory, maintenance)
	VALUES (?, ?, ?, ?)`

	return l.writer.loadSnapshot("conformed_categories", ddlConformedCategories, insert,
		len(categories), func(i int) []interface{} {
			c := categories[i]
			return []interface{}{c.CategoryID, c.Category, c.Subcategory, c.Maintenance}
		})
}
