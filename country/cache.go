package country

import (
	"sync"
	"time"
)

// CacheConfig конфигурация кэша справочных данных
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultCacheConfig возвращает конфигурацию кэша по умолчанию
// Курсы и инфляция меняются медленно, часовой TTL достаточен для одного запуска
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		TTL:             time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
}

// cacheEntry запись в кэше
type cacheEntry struct {
	value      any
	expiration time.Time
}

// Cache кэш результатов внешних справочников
type Cache struct {
	config *CacheConfig
	data   map[string]*cacheEntry
	mutex  sync.RWMutex
	stats  CacheStats
}

// CacheStats статистика кэша
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// NewCache создает новый кэш
func NewCache(config *CacheConfig) *Cache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache := &Cache{
		config: config,
		data:   make(map[string]*cacheEntry),
	}

	// Запускаем очистку устаревших записей
	if config.Enabled && config.CleanupInterval > 0 {
		go cache.startCleanup()
	}

	return cache
}

// Get возвращает значение из кэша
func (c *Cache) Get(key string) (any, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data[key]
	if !exists {
		c.stats.Misses++
		return nil, false
	}

	// Проверяем TTL
	if time.Now().After(entry.expiration) {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return entry.value, true
}

// Set сохраняет значение в кэш
func (c *Cache) Set(key string, value any) {
	if !c.config.Enabled {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		value:      value,
		expiration: time.Now().Add(c.config.TTL),
	}
	c.stats.Size = len(c.data)
}

// Stats возвращает статистику кэша
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := c.stats
	stats.Size = len(c.data)
	return stats
}

// startCleanup периодически удаляет устаревшие записи
func (c *Cache) startCleanup() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup удаляет устаревшие записи
func (c *Cache) cleanup() {
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
	c.stats.Size = len(c.data)
}
