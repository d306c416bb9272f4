package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/httpx"
)

var errUnknownOp = errors.New("unknown operation")

// maxIDs — тот же предел, что и у HTTP-ручки /api/v1/products.
const maxIDs = 100

type opFunc func(ctx context.Context, svc ports.CatalogReadService, arg string) (any, error)

var ops = map[string]opFunc{
	"price-history": withID(func(ctx context.Context, svc ports.CatalogReadService, id int64) (any, error) {
		return svc.PriceHistory(ctx, id)
	}),
	"product-name": withID(func(ctx context.Context, svc ports.CatalogReadService, id int64) (any, error) {
		return svc.ProductDisplayName(ctx, id)
	}),
	"search": func(ctx context.Context, svc ports.CatalogReadService, arg string) (any, error) {
		return svc.SearchProducts(ctx, arg)
	},
	"categories": func(ctx context.Context, svc ports.CatalogReadService, _ string) (any, error) {
		return svc.ListCategories(ctx)
	},
	"category-name": withID(func(ctx context.Context, svc ports.CatalogReadService, id int64) (any, error) {
		return svc.CategoryDisplayName(ctx, id)
	}),
	"category-products": withID(func(ctx context.Context, svc ports.CatalogReadService, id int64) (any, error) {
		return svc.CategoryProducts(ctx, id)
	}),
	"products-by-ids": func(ctx context.Context, svc ports.CatalogReadService, arg string) (any, error) {
		ids, err := httpx.ParseIDList(arg, maxIDs)
		if err != nil {
			return nil, err
		}
		return svc.ProductsByIDs(ctx, ids)
	},
}

// runOp — выполняет операцию op с аргументом arg.
func runOp(ctx context.Context, svc ports.CatalogReadService, op, arg string) (any, error) {
	fn, ok := ops[op]
	if !ok {
		return nil, fmt.Errorf("%w %q (want %s)", errUnknownOp, op, opsUsage())
	}
	return fn(ctx, svc, arg)
}

func withID(fn func(ctx context.Context, svc ports.CatalogReadService, id int64) (any, error)) opFunc {
	return func(ctx context.Context, svc ports.CatalogReadService, arg string) (any, error) {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", httpx.ErrBadID, arg)
		}
		return fn(ctx, svc, id)
	}
}

func opsUsage() string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}
