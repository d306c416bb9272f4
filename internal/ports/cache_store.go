package ports

import (
	"context"
	"time"
)

// NoExpiry — запись живёт, пока кэш не вытеснит её сам.
const NoExpiry time.Duration = 0

// CacheStore — эфемерное key/value хранилище байтов.
// Требования к реализации: потокобезопасность; Get возвращает копию значения.
type CacheStore interface {
	// Get — (value, true, nil) при попадании, (nil, false, nil) при промахе/истечении.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set — записать значение; ttl == NoExpiry — без срока жизни.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
