package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// RawCustomer представляет запись клиента в staging-таблице crm_cust_info
// Данные хранятся в том виде, в котором их выгрузила CRM-система
type RawCustomer struct {
	CustomerID    sql.NullInt64
	CustomerKey   sql.NullString
	FirstName     sql.NullString
	LastName      sql.NullString
	MaritalStatus sql.NullString
	Gender        sql.NullString
	CreateDate    sql.NullTime
}

// RawProduct представляет запись товара в staging-таблице crm_prd_info
type RawProduct struct {
	ProductID  int
	ProductKey sql.NullString
	Name       sql.NullString
	Cost       decimal.NullDecimal
	Line       sql.NullString
	StartDate  sql.NullTime
	// Дата окончания из источника не используется: интервалы действия
	// пересчитываются на этапе трансформации
	EndDate sql.NullTime
}

// RawSale представляет строку продажи в staging-таблице crm_sales_details
// Даты закодированы целыми числами в формате YYYYMMDD
type RawSale struct {
	OrderNumber  sql.NullString
	ProductKey   sql.NullString
	CustomerID   sql.NullInt64
	OrderDateNum sql.NullInt64
	ShipDateNum  sql.NullInt64
	DueDateNum   sql.NullInt64
	Sales        decimal.NullDecimal
	Quantity     int
	Price        decimal.NullDecimal
}

// RawCustomerAttr представляет запись из ERP-таблицы erp_cust_az12
type RawCustomerAttr struct {
	CustomerKey sql.NullString
	BirthDate   sql.NullTime
	Gender      sql.NullString
}

// RawLocation представляет запись из ERP-таблицы erp_loc_a101
type RawLocation struct {
	CustomerKey sql.NullString
	Country     sql.NullString
}

// RawCategory представляет запись из ERP-таблицы erp_px_cat_g1v2
type RawCategory struct {
	CategoryID  sql.NullString
	Category    sql.NullString
	Subcategory sql.NullString
	Maintenance sql.NullString
}

// ExtractedData содержит данные, извлечённые из staging базы данных
type ExtractedData struct {
	Customers     []RawCustomer
	Products      []RawProduct
	Sales         []RawSale
	CustomerAttrs []RawCustomerAttr
	Locations     []RawLocation
	Categories    []RawCategory
	ExtractedAt   time.Time
}
