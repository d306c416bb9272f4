// Пакет pricehistory — чистое преобразование точек цены в историю для отображения.
package pricehistory

import (
	"strings"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarizer — строит PriceHistory из точек цены одного товара.
type Summarizer struct {
	now func() time.Time
}

// NewSummarizer — конструктор; now задаёт «сегодня» (nil → time.Now).
func NewSummarizer(now func() time.Time) *Summarizer {
	if now == nil {
		now = time.Now
	}
	return &Summarizer{now: now}
}

// Summarize — rows должны быть отсортированы по StartDate по убыванию (самая свежая первой).
//
// После обхода добавляется синтетическая точка «сегодня» с ценой последнего добавленного
// элемента. Так как обход идёт от новых к старым, это цена самой СТАРОЙ точки окна.
// Поведение сохранено намеренно, его фиксирует тест TestSummarize_TodayPointCopiesOldestPrice.
func (s *Summarizer) Summarize(rows []domain.PricePoint) domain.PriceHistory {
	history := domain.EmptyPriceHistory()
	if len(rows) == 0 {
		return history
	}

	history.Dates = make([]string, 0, len(rows)+1)
	history.Prices = make([]decimal.Decimal, 0, len(rows)+1)
	for _, row := range rows {
		history.Dates = append(history.Dates, row.StartDate.Format(domain.DateLayout))
		history.Prices = append(history.Prices, decimal.New(row.PriceCents, -2))
	}

	last := history.Prices[len(history.Prices)-1]
	history.Dates = append(history.Dates, s.now().Format(domain.DateLayout))
	history.Prices = append(history.Prices, last)

	minIdx, maxIdx := 0, 0
	for i, price := range history.Prices {
		if price.LessThan(history.Prices[minIdx]) {
			minIdx = i
		}
		if price.GreaterThan(history.Prices[maxIdx]) {
			maxIdx = i
		}
	}

	history.CurrentPrice = ptr(FormatUSD(history.Prices[0]))
	history.MinimumPrice = ptr(FormatUSD(history.Prices[minIdx]))
	history.MaximumPrice = ptr(FormatUSD(history.Prices[maxIdx]))
	history.MinimumPriceDate = ptr(history.Dates[minIdx])
	history.MaximumPriceDate = ptr(history.Dates[maxIdx])
	return history
}

// FormatUSD — "$" + целая часть с разделителями тысяч + ровно два знака после точки.
// 10 → "$10.00", 1234.5 → "$1,234.50", -1 → "$-1.00".
func FormatUSD(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(fixed) + len(fixed)/3 + 2)
	b.WriteString("$")
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func ptr(s string) *string { return &s }
