package transform

import (
	"testing"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testExtractedData возвращает небольшой, но согласованный набор staging-данных:
// дубликат клиента, две версии товара, искаженная строка продаж и справочники ERP
func testExtractedData() *models.ExtractedData {
	return &models.ExtractedData{
		Customers: []models.RawCustomer{
			{CustomerID: nullInt(11000), CustomerKey: nullStr("AW00011000"),
				FirstName: nullStr("Jon"), LastName: nullStr("Yang"),
				MaritalStatus: nullStr("M"), Gender: nullStr("X"),
				CreateDate: nullDate(2021, 10, 6)},
			// Более поздний дубликат того же клиента
			{CustomerID: nullInt(11000), CustomerKey: nullStr("AW00011000"),
				FirstName: nullStr("Jon"), LastName: nullStr("Yang"),
				MaritalStatus: nullStr("M"), Gender: nullStr("X"),
				CreateDate: nullDate(2021, 12, 1)},
		},
		Products: []models.RawProduct{
			{ProductID: 1, ProductKey: nullStr("AC-HE-HL-U509"), Name: nullStr("Sport-100 Helmet"),
				Cost: decimal.NullDecimal{Decimal: decimal.NewFromInt(9), Valid: true},
				Line: nullStr("M"), StartDate: nullDate(2020, 1, 1)},
			{ProductID: 2, ProductKey: nullStr("AC-HE-HL-U509"), Name: nullStr("Sport-100 Helmet"),
				Cost: decimal.NullDecimal{Decimal: decimal.NewFromInt(12), Valid: true},
				Line: nullStr("M"), StartDate: nullDate(2021, 7, 1)},
		},
		Sales: []models.RawSale{
			{OrderNumber: nullStr("SO43697"), ProductKey: nullStr("HL-U509"),
				CustomerID: nullInt(11000), OrderDateNum: nullInt(20210915),
				Sales: nullDec(0), Quantity: 3, Price: nullDec(10)},
		},
		CustomerAttrs: []models.RawCustomerAttr{
			{CustomerKey: nullStr("NASAW00011000"), BirthDate: nullDate(1971, 10, 6), Gender: nullStr("M")},
		},
		Locations: []models.RawLocation{
			{CustomerKey: nullStr("AW-00011000"), Country: nullStr("US")},
		},
		Categories: []models.RawCategory{
			{CategoryID: nullStr("AC_HE"), Category: nullStr("Accessories"),
				Subcategory: nullStr("Helmets"), Maintenance: nullStr("No")},
		},
		ExtractedAt: time.Now(),
	}
}

func TestTransformEndToEnd(t *testing.T) {
	transformer := NewTransformer(testLogger())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	conformed := transformer.Transform(testExtractedData(), now)

	// Клиенты дедуплицированы по самой поздней дате создания
	require.Len(t, conformed.Customers, 1)
	assert.Equal(t, nullDate(2021, 12, 1), conformed.Customers[0].CreateDate)
	assert.Equal(t, "Married", conformed.Customers[0].MaritalStatus)
	assert.Equal(t, "n/a", conformed.Customers[0].Gender)

	// Версии товара получили интервалы действия: первая закрыта, вторая текущая
	require.Len(t, conformed.Products, 2)
	require.True(t, conformed.Products[0].EndDate.Valid)
	assert.Equal(t, time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), conformed.Products[0].EndDate.Time)
	assert.False(t, conformed.Products[1].EndDate.Valid)

	// Сумма продажи восстановлена из количества и цены
	require.Len(t, conformed.Sales, 1)
	require.True(t, conformed.Sales[0].Sales.Valid)
	assert.True(t, conformed.Sales[0].Sales.Decimal.Equal(decimal.NewFromInt(30)))

	// Справочники ERP очищены
	require.Len(t, conformed.CustomerAttrs, 1)
	assert.Equal(t, "AW00011000", conformed.CustomerAttrs[0].CustomerKey)
	require.Len(t, conformed.Locations, 1)
	assert.Equal(t, "United States", conformed.Locations[0].Country)
}

func TestTransformAndAssemblePipeline(t *testing.T) {
	transformer := NewTransformer(testLogger())
	assembler := NewAssembler(testLogger())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	conformed := transformer.Transform(testExtractedData(), now)
	dimensional := assembler.Assemble(conformed)

	// Измерение клиентов: обогащение из ERP, пол взят из атрибутов
	require.Len(t, dimensional.Customers, 1)
	customer := dimensional.Customers[0]
	assert.Equal(t, 1, customer.CustomerKey)
	assert.Equal(t, "United States", customer.Country)
	assert.Equal(t, "Male", customer.Gender)
	assert.Equal(t, nullDate(1971, 10, 6), customer.BirthDate)

	// Измерение товаров: только текущая версия, категория присоединена
	require.Len(t, dimensional.Products, 1)
	product := dimensional.Products[0]
	assert.Equal(t, 2, product.ProductID)
	assert.Equal(t, "Accessories", product.Category)
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(12)))

	// Факт продажи ссылается на оба измерения
	require.Len(t, dimensional.Sales, 1)
	fact := dimensional.Sales[0]
	require.True(t, fact.CustomerKey.Valid)
	assert.Equal(t, int64(customer.CustomerKey), fact.CustomerKey.Int64)
	require.True(t, fact.ProductKey.Valid)
	assert.Equal(t, int64(product.ProductKey), fact.ProductKey.Int64)
}

func TestTransformDeterministic(t *testing.T) {
	transformer := NewTransformer(testLogger())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first := transformer.Transform(testExtractedData(), now)
	second := transformer.Transform(testExtractedData(), now)

	assert.Equal(t, first, second)
}
