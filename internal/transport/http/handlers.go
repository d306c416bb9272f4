package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// maxIDsPerRequest — верхняя граница списка ids в /api/v1/products.
const maxIDsPerRequest = 100

type Handler struct {
	service        ports.CatalogReadService
	log            ports.Logger
	timeout        time.Duration
	imageURLPrefix string
}

type HandlerOption func(*Handler)

// WithImageURLPrefix — префикс ссылок на картинки товаров в истории цен.
func WithImageURLPrefix(prefix string) HandlerOption {
	return func(h *Handler) { h.imageURLPrefix = strings.TrimRight(prefix, "/") }
}

// NewHandler — timeout <= 0 означает работу без собственного дедлайна запроса.
func NewHandler(service ports.CatalogReadService, log ports.Logger, timeout time.Duration, opts ...HandlerOption) *Handler {
	h := &Handler{service: service, log: log, timeout: timeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type priceHistoryResponse struct {
	ProductID        int64    `json:"product_id"`
	ImageURL         string   `json:"image_url,omitempty"`
	Dates            []string `json:"dates"`
	Prices           []string `json:"prices"`
	CurrentPrice     *string  `json:"current_price,omitempty"`
	MinimumPrice     *string  `json:"minimum_price,omitempty"`
	MaximumPrice     *string  `json:"maximum_price,omitempty"`
	MinimumPriceDate *string  `json:"minimum_price_date,omitempty"`
	MaximumPriceDate *string  `json:"maximum_price_date,omitempty"`
}

type displayNameResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

type searchResponse struct {
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

type productsResponse struct {
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

type categoriesResponse struct {
	Count      int               `json:"count"`
	Categories []domain.Category `json:"categories"`
}

type categoryPageResponse struct {
	CategoryID  int64            `json:"category_id"`
	DisplayName string           `json:"display_name"`
	Count       int              `json:"count"`
	Products    []domain.Product `json:"products"`
}

func (h *Handler) priceHistory(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	history, err := h.service.PriceHistory(ctx, id)
	if err != nil {
		h.internalError(c, err, "PriceHistory failed id=%d", id)
		return
	}

	prices := make([]string, 0, len(history.Prices))
	for _, p := range history.Prices {
		prices = append(prices, p.StringFixed(2))
	}
	dates := history.Dates
	if dates == nil {
		dates = []string{}
	}

	c.JSON(http.StatusOK, priceHistoryResponse{
		ProductID:        id,
		ImageURL:         h.imageURL(id),
		Dates:            dates,
		Prices:           prices,
		CurrentPrice:     history.CurrentPrice,
		MinimumPrice:     history.MinimumPrice,
		MaximumPrice:     history.MaximumPrice,
		MinimumPriceDate: history.MinimumPriceDate,
		MaximumPriceDate: history.MaximumPriceDate,
	})
}

func (h *Handler) productName(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	name, err := h.service.ProductDisplayName(ctx, id)
	if err != nil {
		h.internalError(c, err, "ProductDisplayName failed id=%d", id)
		return
	}
	c.JSON(http.StatusOK, displayNameResponse{ID: id, DisplayName: name})
}

func (h *Handler) searchProducts(c *gin.Context) {
	// запрос передаётся дальше как есть: ключ кэша строится по сырой строке
	query := c.Query("q")
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.service.SearchProducts(ctx, query)
	if err != nil {
		h.internalError(c, err, "SearchProducts failed q=%q", query)
		return
	}
	c.JSON(http.StatusOK, searchResponse{Query: query, Count: len(products), Products: nonNil(products)})
}

func (h *Handler) productsByIDs(c *gin.Context) {
	ids, err := httpx.ParseIDList(c.Query("ids"), maxIDsPerRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.service.ProductsByIDs(ctx, ids)
	if err != nil {
		h.internalError(c, err, "ProductsByIDs failed ids=%v", ids)
		return
	}
	c.JSON(http.StatusOK, productsResponse{Count: len(products), Products: nonNil(products)})
}

func (h *Handler) listCategories(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.internalError(c, err, "ListCategories failed")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categoriesResponse{Count: len(categories), Categories: categories})
}

// categoryPage — имя категории и её товары одним ответом.
func (h *Handler) categoryPage(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	name, err := h.service.CategoryDisplayName(ctx, id)
	if err != nil {
		h.internalError(c, err, "CategoryDisplayName failed id=%d", id)
		return
	}
	products, err := h.service.CategoryProducts(ctx, id)
	if err != nil {
		h.internalError(c, err, "CategoryProducts failed id=%d", id)
		return
	}
	c.JSON(http.StatusOK, categoryPageResponse{
		CategoryID:  id,
		DisplayName: name,
		Count:       len(products),
		Products:    nonNil(products),
	})
}

// --- функции помощники ---

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) idParam(c *gin.Context) (int64, bool) {
	id, err := httpx.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return id, true
}

func (h *Handler) internalError(c *gin.Context, err error, format string, args ...any) {
	ctx := c.Request.Context()
	if errors.Is(err, context.DeadlineExceeded) {
		h.log.Warnf(ctx, "request timed out path=%s", c.FullPath())
	}
	h.log.Errorf(ctx, format+" err=%v", append(args, err)...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// imageURL — <prefix>/<id из 9 цифр>.jpg; без префикса ссылки нет.
func (h *Handler) imageURL(id int64) string {
	if h.imageURLPrefix == "" {
		return ""
	}
	return fmt.Sprintf("%s/%09d.jpg", h.imageURLPrefix, id)
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
