package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// DimCustomer представляет измерение клиентов в звёздной схеме
type DimCustomer struct {
	CustomerKey   int // суррогатный ключ, назначается при сборке
	CustomerID    int // натуральный идентификатор из CRM
	CustomerNK    string
	FirstName     string
	LastName      string
	Country       string
	MaritalStatus string
	Gender        string
	BirthDate     sql.NullTime
	CreateDate    sql.NullTime
}

// DimProduct представляет измерение товаров: только текущие версии
type DimProduct struct {
	ProductKey    int // суррогатный ключ
	ProductID     int // натуральный идентификатор из CRM
	ProductNumber string
	Name          string
	CategoryID    string
	Category      string
	Subcategory   string
	Maintenance   string
	Cost          decimal.Decimal
	Line          string
	StartDate     sql.NullTime
}

// FactSale представляет факт продажи
// Внешние ключи допускают NULL: строка сохраняется даже без совпадения в измерениях
type FactSale struct {
	OrderNumber string
	ProductKey  sql.NullInt64
	CustomerKey sql.NullInt64
	OrderDate   sql.NullTime
	ShipDate    sql.NullTime
	DueDate     sql.NullTime
	Sales       decimal.NullDecimal
	Quantity    int
	Price       decimal.NullDecimal
}

// DimensionalData содержит результат сборки звёздной схемы
type DimensionalData struct {
	Customers []DimCustomer
	Products  []DimProduct
	Sales     []FactSale
}
