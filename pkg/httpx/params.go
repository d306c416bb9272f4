package httpx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrBadID — идентификатор в пути или query не является целым числом.
var ErrBadID = errors.New("invalid id")

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseIDParam — читает целочисленный path-параметр name.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadID, name, raw)
	}
	return id, nil
}

// ParseIDList — "1,2,3" → [1 2 3] в исходном порядке, без дедупликации.
// Пустые элементы ("1,,2") и больше maxIDs значений — ошибка.
func ParseIDList(raw string, maxIDs int) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int64{}, nil
	}
	parts := strings.Split(raw, ",")
	if maxIDs > 0 && len(parts) > maxIDs {
		return nil, fmt.Errorf("%w: too many ids (%d > %d)", ErrBadID, len(parts), maxIDs)
	}
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadID, p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
