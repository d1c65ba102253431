package transform

import (
	"strings"

	"github.com/LilVoxy/retail_dwh/models"
)

// Таблицы декодирования кодов источников
// Любой код вне известного набора отображается в 'n/a' и никогда
// не попадает в очищенный слой в исходном виде
var (
	maritalStatusCodes = map[string]string{
		"M": "Married",
		"S": "Single",
	}

	genderCodes = map[string]string{
		"M":      "Male",
		"MALE":   "Male",
		"F":      "Female",
		"FEMALE": "Female",
	}

	productLineCodes = map[string]string{
		"M": "Mountain",
		"R": "Road",
		"S": "Other Sales",
		"T": "Touring",
	}

	// Синонимы названий стран из ERP-выгрузки
	countrySynonyms = map[string]string{
		"US":            "United States",
		"USA":           "United States",
		"UNITED STATES": "United States",
		"DE":            "Germany",
		"GERMANY":       "Germany",
	}
)

// DecodeMaritalStatus декодирует код семейного положения
func DecodeMaritalStatus(code string) string {
	if decoded, ok := maritalStatusCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return decoded
	}
	return models.NotAvailable
}

// DecodeGender декодирует код пола
func DecodeGender(code string) string {
	if decoded, ok := genderCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return decoded
	}
	return models.NotAvailable
}

// DecodeProductLine декодирует код товарной линейки
func DecodeProductLine(code string) string {
	if decoded, ok := productLineCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return decoded
	}
	return models.NotAvailable
}

// NormalizeCountry приводит название страны к каноническому виду
// Пустые и отсутствующие значения отображаются в 'n/a',
// неизвестные названия проходят без изменений (после обрезки пробелов)
func NormalizeCountry(country string) string {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return models.NotAvailable
	}
	if normalized, ok := countrySynonyms[strings.ToUpper(trimmed)]; ok {
		return normalized
	}
	return trimmed
}
