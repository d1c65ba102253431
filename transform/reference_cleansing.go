package transform

import (
	"database/sql"
	"strings"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// Префикс, который ERP-система добавляет к идентификаторам клиентов
const erpCustomerKeyPrefix = "NAS"

// ReferenceCleansingProcessor отвечает за очистку справочных данных ERP:
// атрибуты клиентов, местоположения и справочник категорий
type ReferenceCleansingProcessor struct {
	logger *utils.ETLLogger
}

// NewReferenceCleansingProcessor создает новый экземпляр ReferenceCleansingProcessor
func NewReferenceCleansingProcessor(logger *utils.ETLLogger) *ReferenceCleansingProcessor {
	return &ReferenceCleansingProcessor{
		logger: logger,
	}
}

// ProcessCustomerAttrs очищает атрибуты клиентов:
// срезает префикс 'NAS' у идентификатора, обнуляет даты рождения из будущего
// (относительно момента обработки now) и нормализует код пола
func (p *ReferenceCleansingProcessor) ProcessCustomerAttrs(attrs []models.RawCustomerAttr, now time.Time) []models.ConformedCustomerAttr {
	p.logger.Debug("Очистка атрибутов клиентов...")

	conformed := make([]models.ConformedCustomerAttr, 0, len(attrs))
	futureDates := 0

	for _, attr := range attrs {
		key := strings.TrimSpace(attr.CustomerKey.String)
		key = strings.TrimPrefix(key, erpCustomerKeyPrefix)

		birthDate := attr.BirthDate
		if birthDate.Valid && birthDate.Time.After(now) {
			// Дата рождения из будущего: заведомо некорректные данные
			birthDate = sql.NullTime{}
			futureDates++
		}

		conformed = append(conformed, models.ConformedCustomerAttr{
			CustomerKey: key,
			BirthDate:   birthDate,
			Gender:      DecodeGender(attr.Gender.String),
		})
	}

	p.logger.Info("Очистка атрибутов клиентов завершена. Записей: %d, обнулено дат рождения из будущего: %d",
		len(conformed), futureDates)
	return conformed
}

// ProcessLocations очищает местоположения клиентов:
// удаляет дефисы из идентификатора и нормализует названия стран
func (p *ReferenceCleansingProcessor) ProcessLocations(locations []models.RawLocation) []models.ConformedLocation {
	p.logger.Debug("Очистка местоположений клиентов...")

	conformed := make([]models.ConformedLocation, 0, len(locations))
	for _, location := range locations {
		key := strings.ReplaceAll(strings.TrimSpace(location.CustomerKey.String), "-", "")

		conformed = append(conformed, models.ConformedLocation{
			CustomerKey: key,
			Country:     NormalizeCountry(location.Country.String),
		})
	}

	p.logger.Info("Очистка местоположений завершена. Записей: %d", len(conformed))
	return conformed
}

// ProcessCategories переносит справочник категорий без изменений
func (p *ReferenceCleansingProcessor) ProcessCategories(categories []models.RawCategory) []models.ConformedCategory {
	p.logger.Debug("Перенос справочника категорий...")

	conformed := make([]models.ConformedCategory, 0, len(categories))
	for _, category := range categories {
		conformed = append(conformed, models.ConformedCategory{
			CategoryID:  category.CategoryID.String,
			Category:    category.Category.String,
			Subcategory: category.Subcategory.String,
			Maintenance: category.Maintenance.String,
		})
	}

	p.logger.Info("Перенос справочника категорий завершен. Записей: %d", len(conformed))
	return conformed
}
