package transform

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *utils.ETLLogger {
	return utils.NewETLLoggerWithWriter(io.Discard, false)
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func nullDate(year int, month time.Month, day int) sql.NullTime {
	return sql.NullTime{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestProcessCustomersDeduplication(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{
		{CustomerID: nullInt(7), CustomerKey: nullStr("AW00000007"), FirstName: nullStr(" Ann "), CreateDate: nullDate(2021, 1, 1)},
		{CustomerID: nullInt(7), CustomerKey: nullStr("AW00000007"), FirstName: nullStr("Anne"), CreateDate: nullDate(2022, 6, 1)},
	}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, 7, conformed[0].CustomerID)
	assert.Equal(t, "Anne", conformed[0].FirstName)
	assert.Equal(t, nullDate(2022, 6, 1), conformed[0].CreateDate)
}

func TestProcessCustomersDedupKeepsMaxDatePerID(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{
		{CustomerID: nullInt(1), CreateDate: nullDate(2020, 3, 1)},
		{CustomerID: nullInt(2), CreateDate: nullDate(2021, 1, 1)},
		{CustomerID: nullInt(1), CreateDate: nullDate(2023, 5, 9)},
		{CustomerID: nullInt(2), CreateDate: nullDate(2019, 12, 31)},
		{CustomerID: nullInt(1), CreateDate: nullDate(2022, 7, 15)},
	}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 2)
	assert.Equal(t, 1, conformed[0].CustomerID)
	assert.Equal(t, nullDate(2023, 5, 9), conformed[0].CreateDate)
	assert.Equal(t, 2, conformed[1].CustomerID)
	assert.Equal(t, nullDate(2021, 1, 1), conformed[1].CreateDate)
}

func TestProcessCustomersDropsNullIDs(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{
		{CustomerID: sql.NullInt64{}, FirstName: nullStr("Ghost"), CreateDate: nullDate(2022, 1, 1)},
		{CustomerID: nullInt(3), FirstName: nullStr("Kate"), CreateDate: nullDate(2022, 1, 1)},
	}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, 3, conformed[0].CustomerID)
}

func TestProcessCustomersTieResolvesToSingleSurvivor(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	// Две версии с одинаковой датой создания: должна выжить ровно одна
	raw := []models.RawCustomer{
		{CustomerID: nullInt(5), FirstName: nullStr("Bob"), CreateDate: nullDate(2022, 1, 1)},
		{CustomerID: nullInt(5), FirstName: nullStr("Robert"), CreateDate: nullDate(2022, 1, 1)},
	}

	first := p.ProcessCustomers(raw)
	second := p.ProcessCustomers(raw)

	require.Len(t, first, 1)
	// Выбор выжившей записи детерминирован между запусками
	assert.Equal(t, first, second)
}

func TestProcessCustomersTieSurvivorIndependentOfInputOrder(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	// Равные даты создания, разные ключи: выбор определяется содержимым
	// строк и не меняется при другом порядке строк на входе
	a := models.RawCustomer{CustomerID: nullInt(5), CustomerKey: nullStr("AW00000005"),
		FirstName: nullStr("Bob"), CreateDate: nullDate(2022, 1, 1)}
	b := models.RawCustomer{CustomerID: nullInt(5), CustomerKey: nullStr("AW00000099"),
		FirstName: nullStr("Robert"), CreateDate: nullDate(2022, 1, 1)}

	forward := p.ProcessCustomers([]models.RawCustomer{a, b})
	reversed := p.ProcessCustomers([]models.RawCustomer{b, a})

	require.Len(t, forward, 1)
	assert.Equal(t, forward, reversed)
	// При равных датах побеждает меньший ключ клиента
	assert.Equal(t, "AW00000005", forward[0].CustomerKey)
}

func TestProcessCustomersKeepsNullCreateDate(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	// Строка без даты создания проходит очистку: дата остается NULL,
	// запись не отбрасывается
	raw := []models.RawCustomer{
		{CustomerID: nullInt(42), CustomerKey: nullStr("AW00000042"), FirstName: nullStr("Eva")},
	}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, 42, conformed[0].CustomerID)
	assert.False(t, conformed[0].CreateDate.Valid)
}

func TestProcessCustomersNullDateLosesToAnyDate(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{
		{CustomerID: nullInt(8), FirstName: nullStr("Old")},
		{CustomerID: nullInt(8), FirstName: nullStr("New"), CreateDate: nullDate(2020, 1, 1)},
	}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, "New", conformed[0].FirstName)
	assert.Equal(t, nullDate(2020, 1, 1), conformed[0].CreateDate)
}

func TestProcessCustomersDecodesCodes(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	tests := []struct {
		name            string
		maritalStatus   sql.NullString
		gender          sql.NullString
		expectedMarital string
		expectedGender  string
	}{
		{"известные коды", nullStr("M"), nullStr("F"), "Married", "Female"},
		{"нижний регистр с пробелами", nullStr(" s "), nullStr(" m "), "Single", "Male"},
		{"неизвестные коды", nullStr("X"), nullStr("?"), "n/a", "n/a"},
		{"отсутствующие значения", sql.NullString{}, sql.NullString{}, "n/a", "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []models.RawCustomer{{
				CustomerID:    nullInt(1),
				MaritalStatus: tt.maritalStatus,
				Gender:        tt.gender,
				CreateDate:    nullDate(2022, 1, 1),
			}}

			conformed := p.ProcessCustomers(raw)

			require.Len(t, conformed, 1)
			assert.Equal(t, tt.expectedMarital, conformed[0].MaritalStatus)
			assert.Equal(t, tt.expectedGender, conformed[0].Gender)
		})
	}
}

func TestProcessCustomersTrimsStrings(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{{
		CustomerID:  nullInt(9),
		CustomerKey: nullStr("  AW00000009  "),
		FirstName:   nullStr("  John "),
		LastName:    nullStr(" Smith  "),
		CreateDate:  nullDate(2022, 1, 1),
	}}

	conformed := p.ProcessCustomers(raw)

	require.Len(t, conformed, 1)
	assert.Equal(t, "AW00000009", conformed[0].CustomerKey)
	assert.Equal(t, "John", conformed[0].FirstName)
	assert.Equal(t, "Smith", conformed[0].LastName)
}

func TestProcessCustomersIdempotent(t *testing.T) {
	p := NewCustomerCleansingProcessor(testLogger())

	raw := []models.RawCustomer{
		{CustomerID: nullInt(2), FirstName: nullStr("Ira"), Gender: nullStr("F"), CreateDate: nullDate(2021, 4, 2)},
		{CustomerID: nullInt(1), FirstName: nullStr("Oleg"), Gender: nullStr("M"), CreateDate: nullDate(2020, 2, 1)},
		{CustomerID: nullInt(2), FirstName: nullStr("Irina"), Gender: nullStr("F"), CreateDate: nullDate(2022, 4, 2)},
	}

	first := p.ProcessCustomers(raw)
	second := p.ProcessCustomers(raw)

	assert.Equal(t, first, second)
}
