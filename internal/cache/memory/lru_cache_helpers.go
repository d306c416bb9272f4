package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/price_catalog/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues(backendLabel, "evicted").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.key)
	}
	c.ll.Remove(elem)
}

// pruneExpiredFromBack — удаляет истёкшие элементы с хвоста до первого актуального.
// Записи без TTL и свежие записи останавливают проход.
func (c *LRUCache) pruneExpiredFromBack(now time.Time) {
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok {
			c.removeElement(back)
			metrics.CacheSize.Set(float64(c.ll.Len()))
			continue
		}
		if !isExpired(ent, now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues(backendLabel, "expired").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

// isExpired — проверяет истечение TTL записи.
func isExpired(ent *entry, now time.Time) bool {
	if ent.expiresAt.IsZero() {
		return false
	}
	return !now.Before(ent.expiresAt)
}

// expiryFrom — момент истечения; нулевое время для записей без TTL.
func expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// cloneBytes — копия, чтобы внешние изменения не отражались на данных внутри кэша.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
