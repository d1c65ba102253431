package transform

import (
	"sort"
	"strings"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
)

// CustomerCleansingProcessor отвечает за очистку и дедупликацию клиентов CRM
type CustomerCleansingProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerCleansingProcessor создает новый экземпляр CustomerCleansingProcessor
func NewCustomerCleansingProcessor(logger *utils.ETLLogger) *CustomerCleansingProcessor {
	return &CustomerCleansingProcessor{
		logger: logger,
	}
}

// ProcessCustomers очищает записи клиентов: отбрасывает строки без идентификатора,
// оставляет по одной самой свежей версии на клиента, обрезает пробелы
// и декодирует коды семейного положения и пола
//
// Правило дедупликации: внутри группы с одинаковым cst_id выживает запись
// с максимальной датой создания; при равных датах сравниваются ключи клиента,
// поэтому выбор не зависит от порядка строк на входе
func (p *CustomerCleansingProcessor) ProcessCustomers(customers []models.RawCustomer) []models.ConformedCustomer {
	p.logger.Debug("Очистка записей клиентов...")

	// Выбираем выжившую сырую запись для каждого идентификатора
	survivors := make(map[int64]models.RawCustomer)
	dropped := 0

	for _, customer := range customers {
		// Строки без идентификатора клиента не проходят очистку
		if !customer.CustomerID.Valid {
			dropped++
			continue
		}

		id := customer.CustomerID.Int64
		current, exists := survivors[id]
		if !exists || displacesSurvivor(customer, current) {
			survivors[id] = customer
		}
	}

	// Формируем очищенные записи в порядке возрастания идентификатора,
	// чтобы повторный запуск на тех же данных давал идентичный результат
	ids := make([]int64, 0, len(survivors))
	for id := range survivors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	conformed := make([]models.ConformedCustomer, 0, len(ids))
	for _, id := range ids {
		raw := survivors[id]

		conformed = append(conformed, models.ConformedCustomer{
			CustomerID:    int(id),
			CustomerKey:   strings.TrimSpace(raw.CustomerKey.String),
			FirstName:     strings.TrimSpace(raw.FirstName.String),
			LastName:      strings.TrimSpace(raw.LastName.String),
			MaritalStatus: DecodeMaritalStatus(raw.MaritalStatus.String),
			Gender:        DecodeGender(raw.Gender.String),
			// Отсутствующая дата создания сохраняется как NULL,
			// строка не отбрасывается
			CreateDate: raw.CreateDate,
		})
	}

	p.logger.Info("Очистка клиентов завершена. Получено записей: %d, отброшено без идентификатора: %d",
		len(conformed), dropped)
	return conformed
}

// displacesSurvivor сообщает, должна ли запись candidate вытеснить текущую
// выжившую запись. Побеждает более поздняя дата создания; отсутствующая дата
// считается самой ранней. При равных датах побеждает меньший ключ клиента:
// выбор полностью определяется содержимым строк, а не их порядком
func displacesSurvivor(candidate, current models.RawCustomer) bool {
	if candidate.CreateDate.Valid != current.CreateDate.Valid {
		return candidate.CreateDate.Valid
	}
	if candidate.CreateDate.Valid && !candidate.CreateDate.Time.Equal(current.CreateDate.Time) {
		return candidate.CreateDate.Time.After(current.CreateDate.Time)
	}
	return strings.TrimSpace(candidate.CustomerKey.String) < strings.TrimSpace(current.CustomerKey.String)
}
