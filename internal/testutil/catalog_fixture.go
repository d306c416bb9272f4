package testutil

import "github.com/Gunvolt24/price_catalog/internal/repo/memory"

// Идентификаторы стандартной фикстуры каталога.
const (
	CategoryFootwear int64 = 10
	CategoryHats     int64 = 20

	ProductRedShoes    int64 = 1
	ProductCanvasShoes int64 = 2
	ProductWoolHat     int64 = 3
)

// MakeCatalog — небольшой каталог: две категории, три товара.
// У ProductRedShoes три точки цены, у ProductWoolHat ни одной.
func MakeCatalog(opts ...func(*memory.Seed)) memory.Seed {
	seed := memory.Seed{
		Categories: []memory.SeedCategory{
			{ID: CategoryHats, DisplayName: "Hats"},
			{ID: CategoryFootwear, DisplayName: "Footwear"},
		},
		Products: []memory.SeedProduct{
			{ID: ProductRedShoes, DisplayName: "Red Running Shoes", CategoryID: CategoryFootwear},
			{ID: ProductCanvasShoes, DisplayName: "Blue Canvas Shoes", CategoryID: CategoryFootwear},
			{ID: ProductWoolHat, DisplayName: "Red Wool Hat", CategoryID: CategoryHats},
		},
		Prices: []memory.SeedPrice{
			{ProductID: ProductRedShoes, StartDate: "2024-01-01", PriceCents: 1999},
			{ProductID: ProductRedShoes, StartDate: "2024-03-05", PriceCents: 1750},
			{ProductID: ProductRedShoes, StartDate: "2024-02-15", PriceCents: 1500},
			{ProductID: ProductCanvasShoes, StartDate: "2024-02-01", PriceCents: 4200},
		},
	}
	for _, fn := range opts {
		fn(&seed)
	}
	return seed
}

// WithProduct — дополнительный товар в фикстуре.
func WithProduct(id int64, name string, categoryID int64) func(*memory.Seed) {
	return func(s *memory.Seed) {
		s.Products = append(s.Products, memory.SeedProduct{ID: id, DisplayName: name, CategoryID: categoryID})
	}
}

// WithPrice — дополнительная точка цены.
func WithPrice(productID int64, startDate string, cents int64) func(*memory.Seed) {
	return func(s *memory.Seed) {
		s.Prices = append(s.Prices, memory.SeedPrice{ProductID: productID, StartDate: startDate, PriceCents: cents})
	}
}
