package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/price_catalog/internal/domain"
	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/internal/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CatalogRepository удовлетворяет интерфейсу CatalogStore.
var _ ports.CatalogStore = (*CatalogRepository)(nil)

// CatalogRepository — каталог на Postgres (pgxpool). Только чтение: данные пишет процесс загрузки.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository — конструктор CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// PricePoints — точки цены товара по убыванию start_date.
func (r *CatalogRepository) PricePoints(ctx context.Context, productID int64) ([]domain.PricePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, start_date, price_cents
		FROM prices
		WHERE product_id = $1
		ORDER BY start_date DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("select prices: %w", err)
	}
	defer rows.Close()

	points := make([]domain.PricePoint, 0)
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.ProductID, &p.StartDate, &p.PriceCents); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("prices rows: %w", err)
	}
	return points, nil
}

// ProductByID — товар по id; (nil, nil), если не найден.
func (r *CatalogRepository) ProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, display_name FROM products WHERE id = $1
	`, productID).Scan(&p.ID, &p.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

// SearchProducts — каждое условие автодополнения превращается в префиксное совпадение
// по началу слова; условия объединяются через AND.
func (r *CatalogRepository) SearchProducts(ctx context.Context, req search.Request) ([]domain.Product, error) {
	if len(req.Must) == 0 {
		return []domain.Product{}, nil
	}

	conds := make([]string, 0, len(req.Must))
	args := make([]any, 0, len(req.Must))
	for i, clause := range req.Must {
		if clause.Path != search.DisplayNameField {
			return nil, fmt.Errorf("unsupported search path %q", clause.Path)
		}
		args = append(args, "% "+escapeLike(clause.Query)+"%")
		conds = append(conds, fmt.Sprintf(`(' ' || display_name) ILIKE $%d ESCAPE '\'`, i+1))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, display_name FROM products WHERE `+strings.Join(conds, " AND "),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

// Categories — все категории (без сортировки: её делает шлюз).
func (r *CatalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, display_name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.DisplayName); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categories rows: %w", err)
	}
	return categories, nil
}

// CategoryByID — категория по id; (nil, nil), если не найдена.
func (r *CatalogRepository) CategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, display_name FROM categories WHERE id = $1
	`, categoryID).Scan(&c.ID, &c.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &c, nil
}

// ProductsByCategory — товары категории (равенство по category_id).
func (r *CatalogRepository) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, display_name FROM products WHERE category_id = $1
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("select category products: %w", err)
	}
	return collectProducts(rows)
}

// ProductsByIDs — товары из набора id (id = ANY), упорядочены по id.
func (r *CatalogRepository) ProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, display_name FROM products WHERE id = ANY($1::bigint[]) ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	return collectProducts(rows)
}

// collectProducts — читает (id, display_name) и закрывает rows.
func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike — экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
