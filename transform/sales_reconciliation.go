package transform

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/LilVoxy/retail_dwh/models"
	"github.com/LilVoxy/retail_dwh/utils"
	"github.com/shopspring/decimal"
)

// SalesReconciliationProcessor отвечает за восстановление показателей продаж:
// разбор закодированных дат и починку треугольника сумма/количество/цена
type SalesReconciliationProcessor struct {
	logger *utils.ETLLogger
}

// NewSalesReconciliationProcessor создает новый экземпляр SalesReconciliationProcessor
func NewSalesReconciliationProcessor(logger *utils.ETLLogger) *SalesReconciliationProcessor {
	return &SalesReconciliationProcessor{
		logger: logger,
	}
}

// ProcessSales восстанавливает показатели каждой строки продаж независимо:
// три даты, сумму продажи и цену. Количество не чинится: оно считается
// достоверным в исходных данных
func (p *SalesReconciliationProcessor) ProcessSales(sales []models.RawSale) []models.ConformedSale {
	p.logger.Debug("Восстановление показателей продаж...")

	conformed := make([]models.ConformedSale, 0, len(sales))
	repairedSales := 0
	repairedPrices := 0

	for _, sale := range sales {
		amount, amountRepaired := repairSalesAmount(sale.Sales, sale.Quantity, sale.Price)
		if amountRepaired {
			repairedSales++
		}

		price, priceRepaired := repairPrice(sale.Price, sale.Sales, sale.Quantity)
		if priceRepaired {
			repairedPrices++
		}

		conformed = append(conformed, models.ConformedSale{
			OrderNumber: strings.TrimSpace(sale.OrderNumber.String),
			ProductKey:  strings.TrimSpace(sale.ProductKey.String),
			CustomerID:  int(sale.CustomerID.Int64),
			OrderDate:   DecodeIntDate(sale.OrderDateNum),
			ShipDate:    DecodeIntDate(sale.ShipDateNum),
			DueDate:     DecodeIntDate(sale.DueDateNum),
			Sales:       amount,
			Quantity:    sale.Quantity,
			Price:       price,
		})
	}

	p.logger.Info("Восстановление продаж завершено. Строк: %d, пересчитано сумм: %d, восстановлено цен: %d",
		len(conformed), repairedSales, repairedPrices)
	return conformed
}

// DecodeIntDate разбирает дату, закодированную целым числом в формате YYYYMMDD.
// Значение принимается только если его десятичная запись содержит ровно
// 8 цифр и разбирается как календарная дата; иначе дата обнуляется
func DecodeIntDate(value sql.NullInt64) sql.NullTime {
	if !value.Valid {
		return sql.NullTime{}
	}

	s := strconv.FormatInt(value.Int64, 10)
	if len(s) != 8 {
		return sql.NullTime{}
	}

	parsed, err := time.Parse("20060102", s)
	if err != nil {
		// Число из 8 цифр, но не календарная дата (например, месяц 13)
		return sql.NullTime{}
	}

	return sql.NullTime{Time: parsed, Valid: true}
}

// repairSalesAmount чинит сумму продажи: если записанное значение отсутствует,
// неположительно или расходится с произведением количества на модуль цены,
// сумма пересчитывается как quantity * abs(price). Произведение считается
// достоверным источником, а записанная сумма возможно искаженной
func repairSalesAmount(sales decimal.NullDecimal, quantity int, price decimal.NullDecimal) (decimal.NullDecimal, bool) {
	qty := decimal.NewFromInt(int64(quantity))

	if !sales.Valid || sales.Decimal.LessThanOrEqual(decimal.Zero) ||
		(price.Valid && !sales.Decimal.Equal(qty.Mul(price.Decimal.Abs()))) {
		if !price.Valid {
			// Пересчитать невозможно: произведение с отсутствующей ценой
			// не определено
			return decimal.NullDecimal{}, true
		}
		return decimal.NullDecimal{
			Decimal: price.Decimal.Abs().Mul(qty),
			Valid:   true,
		}, true
	}

	return sales, false
}

// repairPrice восстанавливает цену: если записанное значение отсутствует или
// неположительно, цена выводится как sales / quantity из записанной суммы.
// Нулевое количество или отсутствующая сумма дают отсутствующую цену,
// деление на ноль не возникает
func repairPrice(price decimal.NullDecimal, sales decimal.NullDecimal, quantity int) (decimal.NullDecimal, bool) {
	if price.Valid && price.Decimal.GreaterThan(decimal.Zero) {
		return price, false
	}

	if !sales.Valid || quantity == 0 {
		return decimal.NullDecimal{}, true
	}

	return decimal.NullDecimal{
		Decimal: sales.Decimal.Div(decimal.NewFromInt(int64(quantity))),
		Valid:   true,
	}, true
}
