package transform

import (
	"database/sql"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// SalesFactsProcessor отвечает за сборку фактов продаж
type SalesFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewSalesFactsProcessor создает новый экземпляр SalesFactsProcessor
func NewSalesFactsProcessor(logger *utils.ETLLogger) *SalesFactsProcessor {
	return &SalesFactsProcessor{
		logger: logger,
	}
}

// ProcessSalesFacts собирает факты продаж: очищенные продажи соединяются
// с измерениями клиентов и товаров. Соединение левостороннее: строка продажи
// сохраняется даже без совпадения в измерении, внешний ключ остается пустым
func (p *SalesFactsProcessor) ProcessSalesFacts(
	sales []models.ConformedSale,
	customers []models.DimCustomer,
	products []models.DimProduct,
) []models.FactSale {
	p.logger.Debug("Сборка фактов продаж...")

	customersByID := make(map[int]int, len(customers))
	for _, customer := range customers {
		customersByID[customer.CustomerID] = customer.CustomerKey
	}

	productsByNumber := make(map[string]int, len(products))
	for _, product := range products {
		productsByNumber[product.ProductNumber] = product.ProductKey
	}

	facts := make([]models.FactSale, 0, len(sales))
	unresolved := 0

	for _, sale := range sales {
		fact := models.FactSale{
			OrderNumber: sale.OrderNumber,
			OrderDate:   sale.OrderDate,
			ShipDate:    sale.ShipDate,
			DueDate:     sale.DueDate,
			Sales:       sale.Sales,
			Quantity:    sale.Quantity,
			Price:       sale.Price,
		}

		if key, ok := customersByID[sale.CustomerID]; ok {
			fact.CustomerKey = sql.NullInt64{Int64: int64(key), Valid: true}
		}
		if key, ok := productsByNumber[sale.ProductKey]; ok {
			fact.ProductKey = sql.NullInt64{Int64: int64(key), Valid: true}
		}

		if !fact.CustomerKey.Valid || !fact.ProductKey.Valid {
			unresolved++
		}

		facts = append(facts, fact)
	}

	p.logger.Info("Факты продаж собраны. Строк: %d, с неразрешенными ключами: %d", len(facts), unresolved)
	return facts
}
