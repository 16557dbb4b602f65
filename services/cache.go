package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"sharecalc/config"
)

// CacheMode indicates which cache backend is active
type CacheMode string

const (
	CacheModeRedis    CacheMode = "redis"
	CacheModeInMemory CacheMode = "in-memory"
	CacheModeDisabled CacheMode = "disabled"
)

// Key prefixes of memoized results
var cachePrefixes = []string{"plan:", "condo:"}

// CacheItem for in-memory fallback. Values are kept as JSON so both
// backends hand back independent copies.
type CacheItem struct {
	Data      []byte
	ExpiresAt time.Time
}

type CacheService struct {
	cfg *config.Config

	// Redis
	redis       *redis.Client
	redisCtx    context.Context
	redisCancel context.CancelFunc
	mode        CacheMode
	modeMutex   sync.RWMutex

	// In-memory fallback
	inMemoryStore sync.Map

	hits   uint64
	misses uint64
	statMu sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCacheService(cfg *config.Config) *CacheService {
	ctx, cancel := context.WithCancel(context.Background())

	cs := &CacheService{
		cfg:         cfg,
		redisCtx:    ctx,
		redisCancel: cancel,
		stopChan:    make(chan struct{}),
		mode:        CacheModeInMemory,
	}

	if !cfg.Cache.Enabled {
		log.Println("Result cache disabled in config")
		cs.mode = CacheModeDisabled
		return cs
	}

	if cfg.Redis.Enabled {
		cs.connectRedis()
	} else {
		log.Println("Redis disabled in config, using in-memory cache only")
	}

	return cs
}

// connectRedis attempts to connect to Redis, staying in memory on failure
func (cs *CacheService) connectRedis() {
	if cs.cfg.Redis.Address == "" {
		log.Println("Redis address not configured, using in-memory cache")
		return
	}

	options := &redis.Options{
		Addr:         cs.cfg.Redis.Address,
		Password:     cs.cfg.Redis.Password,
		DB:           cs.cfg.Redis.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		PoolTimeout:  10 * time.Second,
	}

	if cs.cfg.Redis.UseTLS {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
		log.Printf("TLS enabled for Redis connection")
	}

	cs.redis = redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pong, err := cs.redis.Ping(ctx).Result()
	if err != nil {
		log.Printf("⚠️  Redis connection failed: %v", err)
		log.Printf("⚠️  Running in IN-MEMORY mode")
		cs.setMode(CacheModeInMemory)
		return
	}

	log.Printf("✓ Redis connected successfully (response: %s)", pong)
	cs.setMode(CacheModeRedis)
}

func (cs *CacheService) setMode(mode CacheMode) {
	cs.modeMutex.Lock()
	defer cs.modeMutex.Unlock()
	cs.mode = mode
}

func (cs *CacheService) getMode() CacheMode {
	cs.modeMutex.RLock()
	defer cs.modeMutex.RUnlock()
	return cs.mode
}

// Start runs the Redis health check and in-memory eviction loop
func (cs *CacheService) Start() {
	if cs.getMode() == CacheModeDisabled {
		return
	}
	go cs.runMaintenanceLoop()
}

func (cs *CacheService) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		cs.redisCancel()
		if cs.redis != nil {
			cs.redis.Close()
		}
	})
}

func (cs *CacheService) runMaintenanceLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cs.checkRedisHealth()
			cs.evictExpired()
		case <-cs.stopChan:
			return
		}
	}
}

// checkRedisHealth verifies Redis is responsive and attempts reconnection
func (cs *CacheService) checkRedisHealth() {
	if !cs.cfg.Redis.Enabled || cs.redis == nil {
		return
	}

	mode := cs.getMode()
	ctx, cancel := context.WithTimeout(cs.redisCtx, 2*time.Second)
	defer cancel()

	_, err := cs.redis.Ping(ctx).Result()

	if mode == CacheModeRedis && err != nil {
		log.Printf("⚠️  Redis health check failed: %v", err)
		log.Printf("⚠️  Switching to IN-MEMORY mode")
		cs.setMode(CacheModeInMemory)
	} else if mode == CacheModeInMemory && err == nil {
		log.Printf("✓ Redis reconnected! Switching back to REDIS mode")
		cs.syncInMemoryToRedis()
		cs.setMode(CacheModeRedis)
	}
}

// syncInMemoryToRedis copies in-memory entries to Redis on reconnection
func (cs *CacheService) syncInMemoryToRedis() {
	synced := 0
	cs.inMemoryStore.Range(func(key, value interface{}) bool {
		item := value.(*CacheItem)
		if ttl := time.Until(item.ExpiresAt); ttl > 0 {
			if err := cs.setRedis(key.(string), item.Data, ttl); err == nil {
				synced++
			}
		}
		return true
	})
	log.Printf("Synced %d cached results to Redis", synced)
}

func (cs *CacheService) evictExpired() {
	now := time.Now()
	cs.inMemoryStore.Range(func(key, value interface{}) bool {
		if now.After(value.(*CacheItem).ExpiresAt) {
			cs.inMemoryStore.Delete(key)
		}
		return true
	})
}

// ============================================
// Generic Set/Get with Redis + In-Memory
// ============================================

// Set stores data as JSON in the active backend
func (cs *CacheService) Set(key string, data interface{}, ttl time.Duration) {
	mode := cs.getMode()
	if mode == CacheModeDisabled {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("Cache SET skipped for '%s': %v", key, err)
		return
	}

	if mode == CacheModeRedis {
		if err := cs.setRedis(key, raw, ttl); err != nil {
			log.Printf("Redis SET failed for '%s': %v (falling back to in-memory)", key, err)
			cs.setInMemory(key, raw, ttl)
		}
		return
	}
	cs.setInMemory(key, raw, ttl)
}

// GetInto decodes the cached value for key into dst. It reports false on a
// miss or when the cached payload cannot be decoded.
func (cs *CacheService) GetInto(key string, dst interface{}) bool {
	raw, found := cs.get(key)
	if !found {
		cs.recordLookup(false)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("Cache entry '%s' is unreadable: %v", key, err)
		cs.recordLookup(false)
		return false
	}
	cs.recordLookup(true)
	return true
}

func (cs *CacheService) get(key string) ([]byte, bool) {
	switch cs.getMode() {
	case CacheModeDisabled:
		return nil, false
	case CacheModeRedis:
		raw, found, err := cs.getRedis(key)
		if err != nil {
			return cs.getInMemory(key)
		}
		return raw, found
	}
	return cs.getInMemory(key)
}

func (cs *CacheService) recordLookup(hit bool) {
	cs.statMu.Lock()
	defer cs.statMu.Unlock()
	if hit {
		cs.hits++
	} else {
		cs.misses++
	}
}

// ============================================
// Redis Operations
// ============================================

func (cs *CacheService) setRedis(key string, raw []byte, ttl time.Duration) error {
	if cs.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	ctx, cancel := context.WithTimeout(cs.redisCtx, 2*time.Second)
	defer cancel()

	return cs.redis.Set(ctx, key, raw, ttl).Err()
}

func (cs *CacheService) getRedis(key string) ([]byte, bool, error) {
	if cs.redis == nil {
		return nil, false, fmt.Errorf("redis client not initialized")
	}

	ctx, cancel := context.WithTimeout(cs.redisCtx, 2*time.Second)
	defer cancel()

	raw, err := cs.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// ============================================
// In-Memory Operations (Fallback)
// ============================================

func (cs *CacheService) setInMemory(key string, raw []byte, ttl time.Duration) {
	cs.inMemoryStore.Store(key, &CacheItem{
		Data:      raw,
		ExpiresAt: time.Now().Add(ttl),
	})
}

func (cs *CacheService) getInMemory(key string) ([]byte, bool) {
	val, ok := cs.inMemoryStore.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(*CacheItem)
	if time.Now().After(item.ExpiresAt) {
		return nil, false
	}
	return item.Data, true
}

// ============================================
// Utility Methods
// ============================================

// InputKey derives a cache key from the structural hash of v's JSON form
func InputKey(prefix string, v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash input: %w", err)
	}
	return fmt.Sprintf("%s%016x", prefix, xxhash.Sum64(raw)), nil
}

func (cs *CacheService) GetCacheMode() CacheMode {
	return cs.getMode()
}

func (cs *CacheService) ClearCache() error {
	if cs.getMode() == CacheModeRedis && cs.redis != nil {
		ctx, cancel := context.WithTimeout(cs.redisCtx, 5*time.Second)
		defer cancel()

		deleted := 0
		for _, prefix := range cachePrefixes {
			iter := cs.redis.Scan(ctx, 0, prefix+"*", 0).Iterator()
			for iter.Next(ctx) {
				if err := cs.redis.Del(ctx, iter.Val()).Err(); err == nil {
					deleted++
				}
			}
			if err := iter.Err(); err != nil {
				return fmt.Errorf("redis scan %s: %w", prefix, err)
			}
		}
		log.Printf("Redis cache cleared (%d keys deleted)", deleted)
	}

	cs.inMemoryStore.Range(func(key, _ interface{}) bool {
		cs.inMemoryStore.Delete(key)
		return true
	})
	log.Println("In-memory cache cleared")

	return nil
}

func (cs *CacheService) GetCacheStats() map[string]interface{} {
	cs.statMu.Lock()
	hits, misses := cs.hits, cs.misses
	cs.statMu.Unlock()

	stats := map[string]interface{}{
		"mode":          string(cs.getMode()),
		"redis_enabled": cs.cfg.Redis.Enabled,
		"hits":          hits,
		"misses":        misses,
	}

	if cs.getMode() == CacheModeRedis && cs.redis != nil {
		ctx, cancel := context.WithTimeout(cs.redisCtx, 2*time.Second)
		defer cancel()

		if dbSize, err := cs.redis.DBSize(ctx).Result(); err == nil {
			stats["redis_keys"] = dbSize
		}
	}

	inMemCount := 0
	cs.inMemoryStore.Range(func(_, _ interface{}) bool {
		inMemCount++
		return true
	})
	stats["in_memory_keys"] = inMemCount

	return stats
}
