package k2

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
)

// Static cache errors.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
)

// CacheEntry is one cached value with its expiry.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache is a small TTL key-value store used by tooling to memoize lookups
// such as corpus-name to corpus-ID resolution. It is never consulted on the
// API request path; responses are not cached.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions are common options applied to any cache backend.
type CacheOptions struct {
	// TTL is the default lifetime applied when an entry has no expiry.
	TTL time.Duration
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL: constants.DefaultCacheTTL,
	}
}

// LookupKey builds the cache key for a name-to-ID lookup, e.g.
// LookupKey("corpus", orgID, name).
func LookupKey(kind string, parts ...string) string {
	elems := append([]string{kind}, parts...)

	return strings.Join(elems, ":")
}

// MemoryCache is an in-process Cache with TTL expiry and size-bounded
// eviction. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// maxSize <= 0 selects the default size.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry. Expired entries are removed and reported as
// ErrCacheEntryExpired.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry, evicting the soonest-to-expire entry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// evictLocked removes the entry closest to expiry. Callers hold c.mu.
func (c *MemoryCache) evictLocked() {
	var (
		victim   string
		earliest time.Time
	)

	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(earliest) {
			victim = key
			earliest = entry.ExpiresAt
		}
	}

	if victim != "" {
		delete(c.entries, victim)
	}
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired()
}

// Cleanup removes all expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// Keys returns the live keys in sorted order.
func (c *MemoryCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))

	for key, entry := range c.entries {
		if !entry.Expired() {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

// NATSKVConfig configures a NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// TTL is the bucket-level entry lifetime applied at creation.
	TTL time.Duration

	// Credentials is an optional path to a NATS credentials file.
	Credentials string
}

// NATSKVCache is a Cache backed by a NATS JetStream key-value bucket, letting
// several CLI invocations or hosts share one lookup cache.
type NATSKVCache struct {
	conn   *nats.Conn
	kv     nats.KeyValue
	bucket string
}

// NewNATSKVCache connects to NATS and binds (or creates) the configured
// bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSConfigRequired
	}

	opts := []nats.Option{nats.Name("knowledge2-lookup-cache")}
	if config.Credentials != "" {
		opts = append(opts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = "knowledge2-cache"
	}

	kv, err := js.KeyValue(bucket)
	if err != nil {
		ttl := config.TTL
		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    ttl,
		})
		if err != nil {
			conn.Close()

			return nil, fmt.Errorf("creating KV bucket %q: %w", bucket, err)
		}
	}

	return &NATSKVCache{
		conn:   conn,
		kv:     kv,
		bucket: bucket,
	}, nil
}

// sanitizeKey maps cache keys onto the NATS KV key alphabet.
func sanitizeKey(key string) string {
	return strings.NewReplacer(":", ".", "/", "_", " ", "_").Replace(key)
}

// Get retrieves an entry from the KV bucket. Expiry is enforced by the bucket
// TTL; missing and expired keys are indistinguishable.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.kv.Get(sanitizeKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting key %q: %w", key, err)
	}

	return &CacheEntry{Data: kve.Value()}, nil
}

// Set stores an entry in the KV bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	if _, err := c.kv.Put(sanitizeKey(key), entry.Data); err != nil {
		return fmt.Errorf("putting key %q: %w", key, err)
	}

	return nil
}

// Delete removes an entry from the KV bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(sanitizeKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}

	return nil
}

// Clear removes every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return fmt.Errorf("deleting key %q: %w", key, err)
		}
	}

	return nil
}

// Has reports whether the key exists in the bucket.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.kv.Get(sanitizeKey(key))

	return err == nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}
