package transform

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
	"github.com/shopspring/decimal"
)

// ProductKeyProcessor отвечает за вывод ключей соединения из составного
// натурального ключа товара и расчет интервалов действия версий
type ProductKeyProcessor struct {
	logger *utils.ETLLogger
}

// NewProductKeyProcessor создает новый экземпляр ProductKeyProcessor
func NewProductKeyProcessor(logger *utils.ETLLogger) *ProductKeyProcessor {
	return &ProductKeyProcessor{
		logger: logger,
	}
}

// ProcessProducts очищает версии товаров: выводит ключи соединения,
// подставляет нулевую себестоимость вместо отсутствующей, декодирует
// товарную линейку и рассчитывает интервалы действия версий
func (p *ProductKeyProcessor) ProcessProducts(products []models.RawProduct) []models.ConformedProduct {
	p.logger.Debug("Очистка версий товаров...")

	conformed := make([]models.ConformedProduct, 0, len(products))
	naturalKeys := make([]string, 0, len(products))
	for _, product := range products {
		key := strings.TrimSpace(product.ProductKey.String)
		naturalKeys = append(naturalKeys, key)
		categoryKey, salesKey := splitProductKey(key)

		cost := decimal.Zero
		if product.Cost.Valid {
			cost = product.Cost.Decimal
		}

		conformed = append(conformed, models.ConformedProduct{
			ProductID:   product.ProductID,
			CategoryKey: categoryKey,
			SalesKey:    salesKey,
			Name:        strings.TrimSpace(product.Name.String),
			Cost:        cost,
			Line:        DecodeProductLine(product.Line.String),
			// Отсутствующая дата начала сохраняется как NULL,
			// версия не отбрасывается
			StartDate: product.StartDate,
		})
	}

	applyEffectiveDating(conformed, naturalKeys)

	// Итоговый порядок по идентификатору версии, как во входных данных:
	// повторный запуск на тех же данных дает идентичный результат
	sort.SliceStable(conformed, func(i, j int) bool {
		return conformed[i].ProductID < conformed[j].ProductID
	})

	p.logger.Info("Очистка товаров завершена. Версий: %d", len(conformed))
	return conformed
}

// splitProductKey разбирает составной ключ вида "XX-XX-suffix":
// первые 5 символов с заменой дефисов на подчеркивания образуют ключ категории,
// остаток начиная с 7-й позиции дает ключ для соединения с продажами
func splitProductKey(key string) (categoryKey, salesKey string) {
	if len(key) <= 5 {
		return strings.ReplaceAll(key, "-", "_"), ""
	}

	categoryKey = strings.ReplaceAll(key[:5], "-", "_")
	if len(key) > 6 {
		salesKey = key[6:]
	}
	return categoryKey, salesKey
}

// applyEffectiveDating рассчитывает интервалы действия версий товара.
// Версии группируются по полному натуральному ключу и упорядочиваются по дате
// начала; дата окончания каждой версии предшествует на день началу следующей
// версии в группе. Последняя версия остается открытой (NULL в дате окончания)
// и тем самым помечается как текущая
func applyEffectiveDating(products []models.ConformedProduct, naturalKeys []string) {
	groups := make(map[string][]int)
	for i := range products {
		groups[naturalKeys[i]] = append(groups[naturalKeys[i]], i)
	}

	for _, indexes := range groups {
		// Стабильная сортировка по дате начала: отсутствующая дата
		// считается самой ранней, при равных датах сохраняется
		// входной порядок версий
		sort.SliceStable(indexes, func(a, b int) bool {
			sa, sb := products[indexes[a]].StartDate, products[indexes[b]].StartDate
			if sa.Valid != sb.Valid {
				return !sa.Valid
			}
			return sa.Valid && sa.Time.Before(sb.Time)
		})

		for pos, idx := range indexes {
			if pos == len(indexes)-1 {
				// Последняя версия остается текущей, интервал открыт
				products[idx].EndDate = sql.NullTime{}
				continue
			}

			nextStart := products[indexes[pos+1]].StartDate
			if !nextStart.Valid {
				// Следующая версия без даты начала: границу интервала
				// вычислить не из чего
				products[idx].EndDate = sql.NullTime{}
				continue
			}
			products[idx].EndDate = sql.NullTime{
				Time:  nextStart.Time.AddDate(0, 0, -1),
				Valid: true,
			}
		}
	}
}
