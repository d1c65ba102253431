package transform

import (
	"sort"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// CustomerDimensionProcessor отвечает за сборку измерения клиентов
type CustomerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.ETLLogger) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger: logger,
	}
}

// ProcessCustomerDimension собирает измерение клиентов: очищенные клиенты CRM
// обогащаются атрибутами и местоположениями ERP через левое соединение
// по натуральному ключу. Суррогатные ключи назначаются последовательно
// с единицы в порядке возрастания натурального идентификатора
func (p *CustomerDimensionProcessor) ProcessCustomerDimension(
	customers []models.ConformedCustomer,
	attrs []models.ConformedCustomerAttr,
	locations []models.ConformedLocation,
) []models.DimCustomer {
	p.logger.Debug("Сборка измерения клиентов...")

	attrsByKey := make(map[string]models.ConformedCustomerAttr, len(attrs))
	for _, attr := range attrs {
		attrsByKey[attr.CustomerKey] = attr
	}

	locationsByKey := make(map[string]models.ConformedLocation, len(locations))
	for _, location := range locations {
		locationsByKey[location.CustomerKey] = location
	}

	// Порядок назначения суррогатных ключей: натуральный идентификатор по возрастанию
	ordered := make([]models.ConformedCustomer, len(customers))
	copy(ordered, customers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CustomerID < ordered[j].CustomerID
	})

	dimension := make([]models.DimCustomer, 0, len(ordered))
	for i, customer := range ordered {
		dim := models.DimCustomer{
			CustomerKey:   i + 1,
			CustomerID:    customer.CustomerID,
			CustomerNK:    customer.CustomerKey,
			FirstName:     customer.FirstName,
			LastName:      customer.LastName,
			Country:       models.NotAvailable,
			MaritalStatus: customer.MaritalStatus,
			Gender:        customer.Gender,
			CreateDate:    customer.CreateDate,
		}

		if attr, ok := attrsByKey[customer.CustomerKey]; ok {
			dim.BirthDate = attr.BirthDate

			// Основной источник пола - CRM; значение из ERP используется
			// только когда CRM его не знает, а ERP знает
			if dim.Gender == models.NotAvailable && attr.Gender != models.NotAvailable {
				dim.Gender = attr.Gender
			}
		}

		if location, ok := locationsByKey[customer.CustomerKey]; ok {
			dim.Country = location.Country
		}

		dimension = append(dimension, dim)
	}

	p.logger.Info("Измерение клиентов собрано. Записей: %d", len(dimension))
	return dimension
}
