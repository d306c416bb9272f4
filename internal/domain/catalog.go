package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownDisplayName — значение для одиночной сущности, которой нет в каталоге.
const UnknownDisplayName = "UNKNOWN"

// DateLayout — формат дат в истории цен.
const DateLayout = "2006-01-02"

// Product — товар каталога; идентичность по ID.
type Product struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// Category — категория каталога; идентичность по ID.
type Category struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// PricePoint — неизменяемая точка цены (append-only), цена в центах.
type PricePoint struct {
	ProductID  int64     `json:"product_id"`
	StartDate  time.Time `json:"start_date"`
	PriceCents int64     `json:"price_cents"`
}

// PriceHistory — производная история цен (только для кэша, в хранилище не пишется).
// Инвариант: len(Dates) == len(Prices). Указатели nil, если точек нет.
type PriceHistory struct {
	Dates            []string          `json:"dates"`
	Prices           []decimal.Decimal `json:"prices"`
	CurrentPrice     *string           `json:"current_price,omitempty"`
	MinimumPrice     *string           `json:"minimum_price,omitempty"`
	MaximumPrice     *string           `json:"maximum_price,omitempty"`
	MinimumPriceDate *string           `json:"minimum_price_date,omitempty"`
	MaximumPriceDate *string           `json:"maximum_price_date,omitempty"`
}

// EmptyPriceHistory — история без точек: пустые (не nil) срезы, без min/max.
func EmptyPriceHistory() PriceHistory {
	return PriceHistory{Dates: []string{}, Prices: []decimal.Decimal{}}
}

// IsEmpty — в истории нет ни одной точки.
func (h PriceHistory) IsEmpty() bool { return len(h.Dates) == 0 }
