package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Нормализованные значения для неизвестных или пустых кодов
const NotAvailable = "n/a"

// ConformedCustomer представляет клиента после очистки и дедупликации:
// ровно одна запись на каждый непустой идентификатор клиента
type ConformedCustomer struct {
	CustomerID    int
	CustomerKey   string
	FirstName     string
	LastName      string
	MaritalStatus string // 'Married', 'Single', 'n/a'
	Gender        string // 'Male', 'Female', 'n/a'
	// Отсутствующая в источнике дата создания остается NULL
	CreateDate sql.NullTime
}

// ConformedProduct представляет одну версию товара с интервалом действия
// Открытая дата окончания (NULL) означает текущую версию
type ConformedProduct struct {
	ProductID   int
	CategoryKey string // ключ для соединения со справочником категорий
	SalesKey    string // ключ для соединения с продажами
	Name        string
	Cost        decimal.Decimal
	Line        string // 'Mountain', 'Road', 'Other Sales', 'Touring', 'n/a'
	// Отсутствующая в источнике дата начала остается NULL
	StartDate sql.NullTime
	EndDate   sql.NullTime
}

// ConformedSale представляет строку продажи с восстановленными показателями
type ConformedSale struct {
	OrderNumber string
	ProductKey  string
	CustomerID  int
	OrderDate   sql.NullTime
	ShipDate    sql.NullTime
	DueDate     sql.NullTime
	Sales       decimal.NullDecimal
	Quantity    int
	Price       decimal.NullDecimal
}

// ConformedCustomerAttr представляет очищенные ERP-атрибуты клиента
type ConformedCustomerAttr struct {
	CustomerKey string
	BirthDate   sql.NullTime
	Gender      string
}

// ConformedLocation представляет очищенную запись о местоположении клиента
type ConformedLocation struct {
	CustomerKey string
	Country     string
}

// ConformedCategory представляет справочник категорий
// Переносится из staging без изменений
type ConformedCategory struct {
	CategoryID  string
	Category    string
	Subcategory string
	Maintenance string
}

// ConformedData содержит результат работы слоя очистки для всех шести источников
type ConformedData struct {
	Customers     []ConformedCustomer
	Products      []ConformedProduct
	Sales         []ConformedSale
	CustomerAttrs []ConformedCustomerAttr
	Locations     []ConformedLocation
	Categories    []ConformedCategory
}
