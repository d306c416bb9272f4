package usecase

import (
	"strconv"
	"strings"
)

// Теги операций: имя операции в замерах и первая часть ключа кэша.
const (
	OpPriceHistory        = "priceHistory"
	OpProductDisplayName  = "productDisplayName"
	OpSearchProducts      = "searchProducts"
	OpListCategories      = "listCategories"
	OpCategoryDisplayName = "categoryDisplayName"
	OpCategoryProducts    = "categoryProducts"
	OpProductsByIDs       = "productsByIds"
)

// KeyBuilder — детерминированные ключи кэша: префикс + тег операции + параметры как есть.
// Параметры не нормализуются: "Red" и "red", [1,2] и [2,1] — разные ключи.
type KeyBuilder struct {
	prefix string
}

func NewKeyBuilder(prefix string) KeyBuilder { return KeyBuilder{prefix: prefix} }

func (k KeyBuilder) PriceHistory(productID int64) string {
	return k.prefix + "price_history:" + strconv.FormatInt(productID, 10)
}

func (k KeyBuilder) ProductDisplayName(productID int64) string {
	return k.prefix + "product_display_name:" + strconv.FormatInt(productID, 10)
}

func (k KeyBuilder) SearchProducts(queryText string) string {
	return k.prefix + "search_products:" + queryText
}

func (k KeyBuilder) ListCategories() string {
	return k.prefix + "categories"
}

func (k KeyBuilder) CategoryDisplayName(categoryID int64) string {
	return k.prefix + "category_display_name:" + strconv.FormatInt(categoryID, 10)
}

func (k KeyBuilder) CategoryProducts(categoryID int64) string {
	return k.prefix + "category_products:" + strconv.FormatInt(categoryID, 10)
}

// ProductsByIDs — список id в порядке вызывающего, формат "[3,1,2]".
func (k KeyBuilder) ProductsByIDs(ids []int64) string {
	return k.prefix + "products_by_ids:" + formatIDs(ids)
}

func formatIDs(ids []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteByte(']')
	return b.String()
}
