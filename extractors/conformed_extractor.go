package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// ConformedExtractor читает очищенные таблицы из хранилища
// Используется слоем дименсиональной сборки
type ConformedExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewConformedExtractor создает новый экземпляр ConformedExtractor
func NewConformedExtractor(db *sql.DB, logger *utils.ETLLogger) *ConformedExtractor {
	return &ConformedExtractor{
		db:     db,
		logger: logger,
	}
}

// Extract читает все шесть очищенных таблиц из хранилища
func (e *ConformedExtractor) Extract() (*models.ConformedData, error) {
	startTime := time.Now()
	e.logger.Info("Чтение очищенного слоя из хранилища")

	var data models.ConformedData
	var err error

	if data.Customers, err = e.extractCustomers(); err != nil {
		return nil, models.NewETLError("extract", "conformed_customers", models.ErrCodeExtractFailed, err)
	}
	if data.Products, err = e.extractProducts(); err != nil {
		return nil, models.NewETLError("extract", "conformed_products", models.ErrCodeExtractFailed, err)
	}
	if data.Sales, err = e.extractSales(); err != nil {
		return nil, models.NewETLError("extract", "conformed_sales", models.ErrCodeExtractFailed, err)
	}
	if data.CustomerAttrs, err = e.extractCustomerAttrs(); err != nil {
		return nil, models.NewETLError("extract", "conformed_cust_attrs", models.ErrCodeExtractFailed, err)
	}
	if data.Locations, err = e.extractLocations(); err != nil {
		return nil, models.NewETLError("extract", "conformed_locations", models.ErrCodeExtractFailed, err)
	}
	if data.Categories, err = e.extractCategories(); err != nil {
		return nil, models.NewETLError("extract", "conformed_categories", models.ErrCodeExtractFailed, err)
	}

	e.logger.Info("Очищенный слой прочитан. Длительность: %v", time.Since(startTime))
	return &data, nil
}

func (e *ConformedExtractor) extractCustomers() ([]models.ConformedCustomer, error) {
	rows, err := e.db.Query(`
		SELECT customer_id, customer_key, first_name, last_name,
			marital_status, gender, create_date
		FROM conformed_customers
		ORDER BY customer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных клиентов: %w", err)
	}
	defer rows.Close()

	var customers []models.ConformedCustomer
	for rows.Next() {
		var c models.ConformedCustomer
		if err := rows.Scan(
			&c.CustomerID,
			&c.CustomerKey,
			&c.FirstName,
			&c.LastName,
			&c.MaritalStatus,
			&c.Gender,
			&c.CreateDate,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенного клиента: %w", err)
		}
		customers = append(customers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным клиентам: %w", err)
	}
	return customers, nil
}

func (e *ConformedExtractor) extractProducts() ([]models.ConformedProduct, error) {
	rows, err := e.db.Query(`
		SELECT product_id, category_key, sales_key, product_name,
			cost, product_line, start_date, end_date
		FROM conformed_products
		ORDER BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных товаров: %w", err)
	}
	defer rows.Close()

	var products []models.ConformedProduct
	for rows.Next() {
		var p models.ConformedProduct
		if err := rows.Scan(
			&p.ProductID,
			&p.CategoryKey,
			&p.SalesKey,
			&p.Name,
			&p.Cost,
			&p.Line,
			&p.StartDate,
			&p.EndDate,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенного товара: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным товарам: %w", err)
	}
	return products, nil
}

func (e *ConformedExtractor) extractSales() ([]models.ConformedSale, error) {
	rows, err := e.db.Query(`
		SELECT order_number, sales_key, customer_id,
			order_date, ship_date, due_date,
			sales_amount, quantity, price
		FROM conformed_sales
		ORDER BY order_number
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных продаж: %w", err)
	}
	defer rows.Close()

	var sales []models.ConformedSale
	for rows.Next() {
		var s models.ConformedSale
		if err := rows.Scan(
			&s.OrderNumber,
			&s.ProductKey,
			&s.CustomerID,
			&s.OrderDate,
			&s.ShipDate,
			&s.DueDate,
			&s.Sales,
			&s.Quantity,
			&s.Price,
		); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенной продажи: %w", err)
		}
		sales = append(sales, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным продажам: %w", err)
	}
	return sales, nil
}

func (e *ConformedExtractor) extractCustomerAttrs() ([]models.ConformedCustomerAttr, error) {
	rows, err := e.db.Query(`
		SELECT customer_key, birth_date, gender
		FROM conformed_cust_attrs
		ORDER BY customer_key
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных атрибутов клиентов: %w", err)
	}
	defer rows.Close()

	var attrs []models.ConformedCustomerAttr
	for rows.Next() {
		var a models.ConformedCustomerAttr
		if err := rows.Scan(&a.CustomerKey, &a.BirthDate, &a.Gender); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенных атрибутов клиента: %w", err)
		}
		attrs = append(attrs, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным атрибутам: %w", err)
	}
	return attrs, nil
}

func (e *ConformedExtractor) extractLocations() ([]models.ConformedLocation, error) {
	rows, err := e.db.Query(`
		SELECT customer_key, country
		FROM conformed_locations
		ORDER BY customer_key
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных местоположений: %w", err)
	}
	defer rows.Close()

	var locations []models.ConformedLocation
	for rows.Next() {
		var l models.ConformedLocation
		if err := rows.Scan(&l.CustomerKey, &l.Country); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенного местоположения: %w", err)
		}
		locations = append(locations, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным местоположениям: %w", err)
	}
	return locations, nil
}

func (e *ConformedExtractor) extractCategories() ([]models.ConformedCategory, error) {
	rows, err := e.db.Query(`
		SELECT category_id, category, subcategory, maintenance
		FROM conformed_categories
		ORDER BY category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса очищенных категорий: %w", err)
	}
	defer rows.Close()

	var categories []models.ConformedCategory
	for rows.Next() {
		var c models.ConformedCategory
		if err := rows.Scan(&c.CategoryID, &c.Category, &c.Subcategory, &c.Maintenance); err != nil {
			return nil, fmt.Errorf("ошибка обработки очищенной категории: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по очищенным категориям: %w", err)
	}
	return categories, nil
}
