package transform

import (
	"testing"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCustomerDimensionSurrogateKeys(t *testing.T) {
	p := NewCustomerDimensionProcessor(testLogger())

	// Клиенты подаются в произвольном порядке
	customers := []models.ConformedCustomer{
		{CustomerID: 11002, CustomerKey: "AW00011002"},
		{CustomerID: 11000, CustomerKey: "AW00011000"},
		{CustomerID: 11001, CustomerKey: "AW00011001"},
	}

	dimension := p.ProcessCustomerDimension(customers, nil, nil)
	require.Len(t, dimension, 3)

	// Суррогатные ключи плотные, начинаются с единицы и следуют
	// порядку натурального идентификатора
	for i, dim := range dimension {
		assert.Equal(t, i+1, dim.CustomerKey)
	}
	assert.Equal(t, 11000, dimension[0].CustomerID)
	assert.Equal(t, 11001, dimension[1].CustomerID)
	assert.Equal(t, 11002, dimension[2].CustomerID)
}

func TestProcessCustomerDimensionGenderFallback(t *testing.T) {
	p := NewCustomerDimensionProcessor(testLogger())

	tests := []struct {
		name      string
		crmGender string
		erpGender string
		hasAttr   bool
		expected  string
	}{
		{"CRM знает пол", "Male", "Female", true, "Male"},
		{"CRM не знает, ERP знает", "n/a", "Female", true, "Female"},
		{"оба не знают", "n/a", "n/a", true, "n/a"},
		{"атрибутов нет вовсе", "n/a", "", false, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := []models.ConformedCustomer{{
				CustomerID:  11000,
				CustomerKey: "AW00011000",
				Gender:      tt.crmGender,
			}}

			var attrs []models.ConformedCustomerAttr
			if tt.hasAttr {
				attrs = []models.ConformedCustomerAttr{{
					CustomerKey: "AW00011000",
					Gender:      tt.erpGender,
				}}
			}

			dimension := p.ProcessCustomerDimension(customers, attrs, nil)
			require.Len(t, dimension, 1)
			assert.Equal(t, tt.expected, dimension[0].Gender)
		})
	}
}

func TestProcessCustomerDimensionEnrichment(t *testing.T) {
	p := NewCustomerDimensionProcessor(testLogger())

	customers := []models.ConformedCustomer{
		{CustomerID: 11000, CustomerKey: "AW00011000", FirstName: "Jon", LastName: "Yang",
			MaritalStatus: "Married", Gender: "Male",
			CreateDate: nullDate(2021, 10, 6)},
		{CustomerID: 11001, CustomerKey: "AW00011001", Gender: "n/a"},
	}
	attrs := []models.ConformedCustomerAttr{
		{CustomerKey: "AW00011000", BirthDate: nullDate(1971, 10, 6), Gender: "Male"},
	}
	locations := []models.ConformedLocation{
		{CustomerKey: "AW00011000", Country: "Australia"},
	}

	dimension := p.ProcessCustomerDimension(customers, attrs, locations)
	require.Len(t, dimension, 2)

	assert.Equal(t, "Australia", dimension[0].Country)
	assert.Equal(t, nullDate(1971, 10, 6), dimension[0].BirthDate)
	assert.Equal(t, "AW00011000", dimension[0].CustomerNK)

	// Клиент без совпадений в ERP сохраняется с значениями по умолчанию
	assert.Equal(t, "n/a", dimension[1].Country)
	assert.False(t, dimension[1].BirthDate.Valid)
}
