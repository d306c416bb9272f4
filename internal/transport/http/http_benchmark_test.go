//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/price_catalog/internal/domain"
)

// --- Бенчмарки ---

// Базовый бенч: история цен — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_PriceHistory(b *testing.B) {
	h := NewHandler(svcStatic{history: makeHistory(30)}, nopLogger{}, 2*time.Second, WithImageURLPrefix("https://img"))

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/api/v1/products/1/price-history")
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/api/v1/products/1/price-history")
	})
}

// Потолок без маршалинга: та же история, но заранее закодированный JSON.
// Показывает, сколько «ест» encoding/json в хендлере.
func BenchmarkHTTP_PriceHistory_PreMarshaledBytes(b *testing.B) {
	raw, _ := json.Marshal(makeHistory(30))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/api/v1/products/:id/price-history", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServeGET(b, r, "/api/v1/products/1/price-history")
}

// Поиск: 10/50/100 товаров — рост аллокаций и времени
func BenchmarkHTTP_Search(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			list := make([]domain.Product, 0, n)
			for i := 0; i < n; i++ {
				list = append(list, domain.Product{ID: int64(i + 1), DisplayName: "Product " + strconv.Itoa(i)})
			}
			h := NewHandler(svcStatic{products: list}, nopLogger{}, 2*time.Second)

			benchServeGET(b, makeLeanRouter(h), "/api/v1/search?q=prod")
		})
	}
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	h := NewHandler(svcStatic{}, nopLogger{}, 2*time.Second)
	r := makeLeanRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стаб ---

// svcStatic — заранее подготовленные ответы (без аллокаций на каждом вызове).
type svcStatic struct {
	history  domain.PriceHistory
	products []domain.Product
}

func (s svcStatic) PriceHistory(context.Context, int64) (domain.PriceHistory, error) {
	return s.history, nil
}
func (s svcStatic) ProductDisplayName(context.Context, int64) (string, error) { return "bench", nil }
func (s svcStatic) SearchProducts(context.Context, string) ([]domain.Product, error) {
	return s.products, nil
}
func (s svcStatic) ListCategories(context.Context) ([]domain.Category, error) { return nil, nil }
func (s svcStatic) CategoryDisplayName(context.Context, int64) (string, error) {
	return "bench", nil
}
func (s svcStatic) CategoryProducts(context.Context, int64) ([]domain.Product, error) {
	return s.products, nil
}
func (s svcStatic) ProductsByIDs(context.Context, []int64) ([]domain.Product, error) {
	return s.products, nil
}

// --- функции-помощники ---

func makeHistory(n int) domain.PriceHistory {
	h := domain.EmptyPriceHistory()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		h.Dates = append(h.Dates, start.AddDate(0, 0, -i).Format(domain.DateLayout))
		h.Prices = append(h.Prices, decimal.New(int64(1000+i), -2))
	}
	return h
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — получаем меньшую аллокацию
	r.GET("/api/v1/products/:id/price-history", h.priceHistory)
	r.GET("/api/v1/search", h.searchProducts)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "", "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
