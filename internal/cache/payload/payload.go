// Пакет payload — явные версионированные схемы значений, которые кладутся в кэш.
// Одна схема на тип значения; неизвестные поля игнорируются, отсутствующие получают значения по умолчанию.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/shopspring/decimal"
)

// SchemaVersion — текущая версия схем, которую пишет этот код.
const SchemaVersion = 1

// ErrMalformedPayload — значение из кэша не удалось разобрать (ошибка бэкенда, не промах).
var ErrMalformedPayload = errors.New("malformed cache payload")

// Виды значений.
const (
	KindPriceHistory = "price_history"
	KindDisplayName  = "display_name"
	KindProducts     = "products"
	KindCategories   = "categories"
)

// envelope — общая обёртка: версия схемы и вид значения.
type envelope struct {
	Version int             `json:"v"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

// Codec — кодек одного вида значения.
type Codec[T any] struct {
	kind     string
	toWire   func(T) any
	fromWire func(json.RawMessage) (T, error)
}

// Kind — вид значения, который пишет и ожидает кодек.
func (c Codec[T]) Kind() string { return c.kind }

// Encode — сериализует значение в текущей версии схемы.
func (c Codec[T]) Encode(v T) ([]byte, error) {
	data, err := json.Marshal(c.toWire(v))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.kind, err)
	}
	return json.Marshal(envelope{Version: SchemaVersion, Kind: c.kind, Data: data})
}

// Decode — разбирает значение; любая проблема оборачивает ErrMalformedPayload.
// Версии новее SchemaVersion читаются по известным полям.
func (c Codec[T]) Decode(raw []byte) (T, error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, c.kind, err)
	}
	if env.Version < 1 {
		return zero, fmt.Errorf("%w: %s: missing schema version", ErrMalformedPayload, c.kind)
	}
	if env.Kind != c.kind {
		return zero, fmt.Errorf("%w: want kind %q, got %q", ErrMalformedPayload, c.kind, env.Kind)
	}
	if len(env.Data) == 0 {
		return zero, fmt.Errorf("%w: %s: empty data", ErrMalformedPayload, c.kind)
	}

	v, err := c.fromWire(env.Data)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, c.kind, err)
	}
	return v, nil
}

// ------схемы v1------

type priceHistoryV1 struct {
	Dates            []string `json:"dates"`
	Prices           []string `json:"prices"`
	CurrentPrice     *string  `json:"current_price,omitempty"`
	MinimumPrice     *string  `json:"minimum_price,omitempty"`
	MaximumPrice     *string  `json:"maximum_price,omitempty"`
	MinimumPriceDate *string  `json:"minimum_price_date,omitempty"`
	MaximumPriceDate *string  `json:"maximum_price_date,omitempty"`
}

type displayNameV1 struct {
	DisplayName string `json:"display_name"`
}

type productV1 struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

type categoryV1 struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// PriceHistory — кодек истории цен. Цены хранятся строками с двумя знаками.
var PriceHistory = Codec[domain.PriceHistory]{
	kind: KindPriceHistory,
	toWire: func(h domain.PriceHistory) any {
		prices := make([]string, 0, len(h.Prices))
		for _, p := range h.Prices {
			prices = append(prices, p.StringFixed(2))
		}
		return priceHistoryV1{
			Dates:            nonNil(h.Dates),
			Prices:           prices,
			CurrentPrice:     h.CurrentPrice,
			MinimumPrice:     h.MinimumPrice,
			MaximumPrice:     h.MaximumPrice,
			MinimumPriceDate: h.MinimumPriceDate,
			MaximumPriceDate: h.MaximumPriceDate,
		}
	},
	fromWire: func(data json.RawMessage) (domain.PriceHistory, error) {
		var w priceHistoryV1
		if err := json.Unmarshal(data, &w); err != nil {
			return domain.PriceHistory{}, err
		}
		if len(w.Dates) != len(w.Prices) {
			return domain.PriceHistory{}, fmt.Errorf("dates/prices length mismatch: %d != %d", len(w.Dates), len(w.Prices))
		}
		h := domain.EmptyPriceHistory()
		h.Dates = nonNil(w.Dates)
		for _, s := range w.Prices {
			p, err := decimal.NewFromString(s)
			if err != nil {
				return domain.PriceHistory{}, fmt.Errorf("price %q: %w", s, err)
			}
			h.Prices = append(h.Prices, p)
		}
		h.CurrentPrice = w.CurrentPrice
		h.MinimumPrice = w.MinimumPrice
		h.MaximumPrice = w.MaximumPrice
		h.MinimumPriceDate = w.MinimumPriceDate
		h.MaximumPriceDate = w.MaximumPriceDate
		return h, nil
	},
}

// DisplayName — кодек отображаемого имени.
var DisplayName = Codec[string]{
	kind:   KindDisplayName,
	toWire: func(name string) any { return displayNameV1{DisplayName: name} },
	fromWire: func(data json.RawMessage) (string, error) {
		var w displayNameV1
		if err := json.Unmarshal(data, &w); err != nil {
			return "", err
		}
		return w.DisplayName, nil
	},
}

// Products — кодек списка товаров (порядок сохраняется).
var Products = Codec[[]domain.Product]{
	kind: KindProducts,
	toWire: func(products []domain.Product) any {
		out := make([]productV1, 0, len(products))
		for _, p := range products {
			out = append(out, productV1{ID: p.ID, DisplayName: p.DisplayName})
		}
		return out
	},
	fromWire: func(data json.RawMessage) ([]domain.Product, error) {
		var w []productV1
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		out := make([]domain.Product, 0, len(w))
		for _, p := range w {
			out = append(out, domain.Product{ID: p.ID, DisplayName: p.DisplayName})
		}
		return out, nil
	},
}

// Categories — кодек списка категорий (порядок сохраняется).
var Categories = Codec[[]domain.Category]{
	kind: KindCategories,
	toWire: func(categories []domain.Category) any {
		out := make([]categoryV1, 0, len(categories))
		for _, c := range categories {
			out = append(out, categoryV1{ID: c.ID, DisplayName: c.DisplayName})
		}
		return out
	},
	fromWire: func(data json.RawMessage) ([]domain.Category, error) {
		var w []categoryV1
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		out := make([]domain.Category, 0, len(w))
		for _, c := range w {
			out = append(out, domain.Category{ID: c.ID, DisplayName: c.DisplayName})
		}
		return out, nil
	},
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
