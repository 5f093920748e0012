// Package cache: кэш запросов, ключ = (сущность, параметры фильтра).
// Передаётся в сервисы явно; после мутаций сущность инвалидируется целиком.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type entry struct {
	data      any
	expiresAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	// следующая плановая чистка просроченных записей
	sweepAt time.Time

	hits   int64
	misses int64
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	c.sweepAt = c.now().Add(ttl)
	return c
}

// Key собирает ключ "entity:<hash параметров>". Пустые параметры дают "entity:all".
func Key(entity string, params any) string {
	if params == nil {
		return entity + ":all"
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return entity + ":all"
	}
	sum := sha256.Sum256(raw)
	return entity + ":" + hex.EncodeToString(sum[:8])
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return e.data, true
}

// Set кладёт значение и раз в ttl вычищает просроченные записи,
// которые больше никто не читает.
func (c *Cache) Set(key string, value any) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !now.Before(c.sweepAt) {
		c.pruneLocked(now)
	}
	c.entries[key] = entry{data: value, expiresAt: now.Add(c.ttl)}
}

// Prune удаляет просроченные записи и возвращает их число.
func (c *Cache) Prune() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pruneLocked(now)
}

func (c *Cache) pruneLocked(now time.Time) int {
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	c.sweepAt = now.Add(c.ttl)
	return n
}

// Invalidate удаляет все ключи сущности.
func (c *Cache) Invalidate(entity string) int {
	prefix := entity + ":"
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Remember отдаёт значение из кэша или вычисляет и кладёт его. Ошибки не кэшируются.
func Remember[T any](c *Cache, key string, fn func() (T, error)) (T, error) {
	if c != nil {
		if v, ok := c.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}

	v, err := fn()
	if err != nil {
		return v, err
	}
	if c != nil {
		c.Set(key, v)
	}
	return v, nil
}
