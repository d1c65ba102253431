package transform

import (
	"testing"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitProductKey(t *testing.T) {
	tests := []struct {
		name             string
		key              string
		expectedCategory string
		expectedSales    string
	}{
		{"составной ключ", "AC-HE-HL-U509", "AC_HE", "HL-U509"},
		{"другой префикс", "CO-RF-FR-R92B-58", "CO_RF", "FR-R92B-58"},
		{"короткий ключ", "AC-HE", "AC_HE", ""},
		{"ключ из шести символов", "AC-HE-", "AC_HE", ""},
		{"пустой ключ", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryKey, salesKey := splitProductKey(tt.key)
			assert.Equal(t, tt.expectedCategory, categoryKey)
			assert.Equal(t, tt.expectedSales, salesKey)
		})
	}
}

func TestProcessProductsDerivesKeysAndDefaults(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	raw := []models.RawProduct{{
		ProductID:  210,
		ProductKey: nullStr("AC-HE-HL-U509"),
		Name:       nullStr(" Sport-100 Helmet "),
		Cost:       decimal.NullDecimal{}, // себестоимость отсутствует
		Line:       nullStr("M"),
		StartDate:  nullDate(2021, 7, 1),
	}}

	conformed := p.ProcessProducts(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, "AC_HE", conformed[0].CategoryKey)
	assert.Equal(t, "HL-U509", conformed[0].SalesKey)
	assert.Equal(t, "Sport-100 Helmet", conformed[0].Name)
	assert.True(t, conformed[0].Cost.Equal(decimal.Zero))
	assert.Equal(t, "Mountain", conformed[0].Line)
}

func TestProcessProductsDecodesLine(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"M", "Mountain"},
		{"R", "Road"},
		{"S", "Other Sales"},
		{"T", "Touring"},
		{" t ", "Touring"},
		{"Q", "n/a"},
		{"", "n/a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DecodeProductLine(tt.code), "код %q", tt.code)
	}
}

func TestProcessProductsEffectiveDating(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	// Три версии одного товара с разными датами начала
	raw := []models.RawProduct{
		{ProductID: 1, ProductKey: nullStr("BI-RB-FR-R92B"), StartDate: nullDate(2020, 1, 1)},
		{ProductID: 2, ProductKey: nullStr("BI-RB-FR-R92B"), StartDate: nullDate(2021, 1, 1)},
		{ProductID: 3, ProductKey: nullStr("BI-RB-FR-R92B"), StartDate: nullDate(2022, 1, 1)},
		// Версия другого товара не влияет на интервалы первого
		{ProductID: 4, ProductKey: nullStr("BI-MB-FR-M94S"), StartDate: nullDate(2020, 6, 1)},
	}

	conformed := p.ProcessProducts(raw)
	require.Len(t, conformed, 4)

	byID := make(map[int]models.ConformedProduct)
	for _, product := range conformed {
		byID[product.ProductID] = product
	}

	// Дата окончания каждой версии: день перед началом следующей
	require.True(t, byID[1].EndDate.Valid)
	assert.Equal(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), byID[1].EndDate.Time)
	require.True(t, byID[2].EndDate.Valid)
	assert.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), byID[2].EndDate.Time)

	// Последняя версия каждой группы открыта
	assert.False(t, byID[3].EndDate.Valid)
	assert.False(t, byID[4].EndDate.Valid)
}

func TestProcessProductsValidityCoverage(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	raw := []models.RawProduct{
		{ProductID: 11, ProductKey: nullStr("CL-SO-SO-R809"), StartDate: nullDate(2021, 3, 10)},
		{ProductID: 12, ProductKey: nullStr("CL-SO-SO-R809"), StartDate: nullDate(2019, 5, 2)},
		{ProductID: 13, ProductKey: nullStr("CL-SO-SO-R809"), StartDate: nullDate(2020, 8, 20)},
	}

	conformed := p.ProcessProducts(raw)
	require.Len(t, conformed, 3)

	// Сортируем по дате начала и проверяем разбиение времени без зазоров
	ordered := make([]models.ConformedProduct, len(conformed))
	copy(ordered, conformed)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].StartDate.Time.Before(ordered[i].StartDate.Time) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	openEnded := 0
	for i, product := range ordered {
		if i < len(ordered)-1 {
			require.True(t, product.EndDate.Valid, "закрытая версия %d должна иметь дату окончания", product.ProductID)
			// Без зазоров: окончание + 1 день == начало следующей версии
			assert.Equal(t, ordered[i+1].StartDate.Time, product.EndDate.Time.AddDate(0, 0, 1))
		}
		if !product.EndDate.Valid {
			openEnded++
		}
	}

	// Ровно одна открытая версия на натуральный ключ
	assert.Equal(t, 1, openEnded)
}

func TestProcessProductsKeepsNullStartDate(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	// Версия без даты начала проходит очистку: дата остается NULL,
	// версия не отбрасывается
	raw := []models.RawProduct{
		{ProductID: 1, ProductKey: nullStr("AC-HE-HL-U509"), Name: nullStr("Sport-100 Helmet")},
	}

	conformed := p.ProcessProducts(raw)

	require.Len(t, conformed, 1)
	assert.False(t, conformed[0].StartDate.Valid)
	// Единственная версия группы остается текущей
	assert.False(t, conformed[0].EndDate.Valid)
}

func TestProcessProductsNullStartSortsFirst(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	// Версия без даты начала считается самой ранней в группе:
	// она закрывается началом первой датированной версии
	raw := []models.RawProduct{
		{ProductID: 1, ProductKey: nullStr("BI-RB-FR-R92B"), StartDate: nullDate(2021, 3, 1)},
		{ProductID: 2, ProductKey: nullStr("BI-RB-FR-R92B")},
	}

	conformed := p.ProcessProducts(raw)
	require.Len(t, conformed, 2)

	byID := make(map[int]models.ConformedProduct)
	for _, product := range conformed {
		byID[product.ProductID] = product
	}

	require.True(t, byID[2].EndDate.Valid)
	assert.Equal(t, time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC), byID[2].EndDate.Time)
	assert.False(t, byID[1].EndDate.Valid)
}

func TestProcessProductsIdempotent(t *testing.T) {
	p := NewProductKeyProcessor(testLogger())

	raw := []models.RawProduct{
		{ProductID: 2, ProductKey: nullStr("AC-HE-HL-U509"), StartDate: nullDate(2022, 1, 1)},
		{ProductID: 1, ProductKey: nullStr("AC-HE-HL-U509"), StartDate: nullDate(2020, 1, 1)},
	}

	first := p.ProcessProducts(raw)
	second := p.ProcessProducts(raw)

	assert.Equal(t, first, second)
}
