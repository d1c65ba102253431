package transform

import (
	"testing"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSalesFactsResolvesKeys(t *testing.T) {
	p := NewSalesFactsProcessor(testLogger())

	sales := []models.ConformedSale{{
		OrderNumber: "SO43697",
		ProductKey:  "HL-U509",
		CustomerID:  11000,
		OrderDate:   nullDate(2021, 9, 15),
		Sales:       nullDec(30),
		Quantity:    3,
		Price:       nullDec(10),
	}}
	customers := []models.DimCustomer{
		{CustomerKey: 7, CustomerID: 11000},
	}
	products := []models.DimProduct{
		{ProductKey: 3, ProductNumber: "HL-U509"},
	}

	facts := p.ProcessSalesFacts(sales, customers, products)
	require.Len(t, facts, 1)

	require.True(t, facts[0].CustomerKey.Valid)
	assert.Equal(t, int64(7), facts[0].CustomerKey.Int64)
	require.True(t, facts[0].ProductKey.Valid)
	assert.Equal(t, int64(3), facts[0].ProductKey.Int64)

	assert.Equal(t, "SO43697", facts[0].OrderNumber)
	assert.Equal(t, nullDate(2021, 9, 15), facts[0].OrderDate)
	assert.Equal(t, 3, facts[0].Quantity)
	assert.True(t, facts[0].Sales.Decimal.Equal(decimal.NewFromInt(30)))
}

func TestProcessSalesFactsKeepsUnresolvedRows(t *testing.T) {
	p := NewSalesFactsProcessor(testLogger())

	sales := []models.ConformedSale{
		{OrderNumber: "SO1", ProductKey: "HL-U509", CustomerID: 99999, Quantity: 1},
		{OrderNumber: "SO2", ProductKey: "NO-SUCH", CustomerID: 11000, Quantity: 2},
	}
	customers := []models.DimCustomer{{CustomerKey: 1, CustomerID: 11000}}
	products := []models.DimProduct{{ProductKey: 1, ProductNumber: "HL-U509"}}

	facts := p.ProcessSalesFacts(sales, customers, products)
	require.Len(t, facts, 2)

	// Клиент не найден: строка остается, ключ клиента пустой
	assert.False(t, facts[0].CustomerKey.Valid)
	assert.True(t, facts[0].ProductKey.Valid)

	// Товар не найден: строка остается, ключ товара пустой
	assert.True(t, facts[1].CustomerKey.Valid)
	assert.False(t, facts[1].ProductKey.Valid)
}

func TestProcessSalesFactsPreservesRowCount(t *testing.T) {
	p := NewSalesFactsProcessor(testLogger())

	sales := []models.ConformedSale{
		{OrderNumber: "SO1", CustomerID: 1, Quantity: 1},
		{OrderNumber: "SO2", CustomerID: 2, Quantity: 1},
		{OrderNumber: "SO3", CustomerID: 3, Quantity: 1},
	}

	facts := p.ProcessSalesFacts(sales, nil, nil)
	assert.Len(t, facts, len(sales))
}
