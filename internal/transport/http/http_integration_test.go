//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cacheredis "github.com/Gunvolt24/price_catalog/internal/cache/redis"
	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/metricsink"
	pgrepo "github.com/Gunvolt24/price_catalog/internal/repo/postgres"
	"github.com/Gunvolt24/price_catalog/internal/testutil"
	rest "github.com/Gunvolt24/price_catalog/internal/transport/http"
	"github.com/Gunvolt24/price_catalog/internal/usecase"
	"github.com/Gunvolt24/price_catalog/pkg/logger"
)

// startStack — Postgres с фикстурой + Redis-кэш + шлюз + httptest-сервер.
func startStack(t *testing.T, timeout time.Duration) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pg, stopPG, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))
	require.NoError(t, testutil.SeedCatalog(ctx, pg.Pool, testutil.MakeCatalog()))

	rd, stopRD, err := testutil.StartRedisTC(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopRD(context.Background()) })

	cache, err := cacheredis.New(ctx, cacheredis.Options{Addr: rd.Addr, PoolSize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	gw := usecase.NewCatalogGateway(
		pgrepo.NewCatalogRepository(pg.Pool), cache, metricsink.NewPrometheus(), logg,
		usecase.WithKeyPrefix("it:"),
	)

	h := rest.NewHandler(gw, logg, timeout, rest.WithImageURLPrefix("https://img.example.com"))
	ts := httptest.NewServer(rest.NewRouter(h, "", ""))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

// 1) история цен: первый запрос — промах, второй — попадание; ответы совпадают
func TestHTTP_PriceHistory_HitEqualsMiss_TC(t *testing.T) {
	ts := startStack(t, 2*time.Second)
	url := ts.URL + "/api/v1/products/1/price-history"

	var first, second map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, url, &first))
	require.Equal(t, http.StatusOK, getJSON(t, url, &second))
	require.Equal(t, first, second)

	require.Equal(t, "https://img.example.com/000000001.jpg", first["image_url"])
	require.Equal(t, "$17.50", first["current_price"])
	require.Equal(t, "$15.00", first["minimum_price"])
	require.Equal(t, "2024-02-15", first["minimum_price_date"])
	require.Len(t, first["dates"], 4)
}

// 2) имена: отсутствующий товар — UNKNOWN, не 404
func TestHTTP_Names_TC(t *testing.T) {
	ts := startStack(t, 2*time.Second)

	var got struct {
		DisplayName string `json:"display_name"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/products/1/name", &got))
	require.Equal(t, "Red Running Shoes", got.DisplayName)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/products/999/name", &got))
	require.Equal(t, domain.UnknownDisplayName, got.DisplayName)
}

// 3) поиск и страница категории отсортированы по имени
func TestHTTP_SearchAndCategory_Sorted_TC(t *testing.T) {
	ts := startStack(t, 2*time.Second)

	var search struct {
		Count    int              `json:"count"`
		Products []domain.Product `json:"products"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/search?q=sho", &search))
	require.Equal(t, 2, search.Count)
	require.Equal(t, "Blue Canvas Shoes", search.Products[0].DisplayName)
	require.Equal(t, "Red Running Shoes", search.Products[1].DisplayName)

	var page struct {
		DisplayName string           `json:"display_name"`
		Count       int              `json:"count"`
		Products    []domain.Product `json:"products"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/categories/10", &page))
	require.Equal(t, "Footwear", page.DisplayName)
	require.Equal(t, 2, page.Count)
	require.Equal(t, "Blue Canvas Shoes", page.Products[0].DisplayName)

	var cats struct {
		Categories []domain.Category `json:"categories"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/categories", &cats))
	require.Len(t, cats.Categories, 2)
	require.Equal(t, "Footwear", cats.Categories[0].DisplayName)
}

// 4) товары по id: отсутствующие пропускаются, 400 на мусор
func TestHTTP_ProductsByIDs_TC(t *testing.T) {
	ts := startStack(t, 2*time.Second)

	var got struct {
		Count    int              `json:"count"`
		Products []domain.Product `json:"products"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/v1/products?ids=3,1,42", &got))
	require.Equal(t, 2, got.Count)
	require.Equal(t, int64(1), got.Products[0].ID)
	require.Equal(t, int64(3), got.Products[1].ID)

	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/v1/products?ids=1,oops", nil))
}

// 5) /ping, /metrics, 404 на неизвестный маршрут
func TestHTTP_Health_Metrics_And_404_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, "", ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(readAll(t, resp.Body)))

	respM, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer respM.Body.Close()
	require.Equal(t, http.StatusOK, respM.StatusCode)
	require.NotEmpty(t, readAll(t, respM.Body))

	var got map[string]any
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/no/such/route", &got))
	require.Equal(t, "route not found", got["error"])
}

// 6) Таймаут запроса: Handler с коротким timeout должен вернуть 500
func TestHTTP_Timeout_500_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, 10*time.Millisecond)
	ts := httptest.NewServer(rest.NewRouter(h, "", ""))
	defer ts.Close()

	var got map[string]any
	require.Equal(t, http.StatusInternalServerError, getJSON(t, ts.URL+"/api/v1/categories", &got))
	require.Equal(t, "internal server error", got["error"])
}

// --- функции помощники ---

// slowService — всегда ждёт ctx.Done() и возвращает ошибку контекста.
type slowService struct{}

func (slowService) PriceHistory(ctx context.Context, _ int64) (domain.PriceHistory, error) {
	<-ctx.Done()
	return domain.PriceHistory{}, ctx.Err()
}
func (slowService) ProductDisplayName(ctx context.Context, _ int64) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
func (slowService) SearchProducts(ctx context.Context, _ string) ([]domain.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (slowService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (slowService) CategoryDisplayName(ctx context.Context, _ int64) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
func (slowService) CategoryProducts(ctx context.Context, _ int64) ([]domain.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (slowService) ProductsByIDs(ctx context.Context, _ []int64) ([]domain.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// readAll — просто прочитать тело.
func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}
