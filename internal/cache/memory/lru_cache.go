package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/price_catalog/internal/ports"
	"github.com/Gunvolt24/price_catalog/pkg/metrics"
)

// Проверка, что LRUCache удовлетворяет интерфейсу CacheStore.
var _ ports.CacheStore = (*LRUCache)(nil)

const backendLabel = "memory"

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time // нулевое значение — без срока жизни
}

// LRUCache — in-process кэш байтов: LRU-вытеснение по ёмкости и TTL на каждую запись.
// Срок жизни считается от момента Set и не продлевается при чтении.
type LRUCache struct {
	capacity int
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// Option — настройка LRUCache.
type Option func(*LRUCache)

// WithClock — подмена часов (для тестов истечения TTL).
func WithClock(now func() time.Time) Option {
	return func(c *LRUCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewLRUCache — конструктор; capacity <= 0 трактуется как 1.
func NewLRUCache(capacity int, opts ...Option) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	c := &LRUCache{
		capacity: capacity,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get — копия значения при попадании; истёкшая запись удаляется и считается промахом.
func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(backendLabel, "miss").Inc()
		return nil, false, nil
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues(backendLabel, "expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false, nil
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues(backendLabel, "hit").Inc()
	return cloneBytes(ent.value), true, nil
}

// Set — записать/перезаписать значение; ttl == ports.NoExpiry — без срока жизни.
func (c *LRUCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = cloneBytes(value)
		ent.expiresAt = expiryFrom(now, ttl)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		value:     cloneBytes(value),
		expiresAt: expiryFrom(now, ttl),
	})
	c.index[key] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len — число записей (включая ещё не удалённые истёкшие).
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
