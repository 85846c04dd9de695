package cache

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// Cache is a generic TTL cache. The schema registry reads field
// definitions through it so hot tables do not hit the metadata store on
// every request. Reads decode into the caller's destination pointer so
// implementations that serialize values (redis) hand back the same
// concrete type the in-process one does.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, loader func() (any, error)) error
}

// assignValue copies a cached value into the caller's destination
// pointer.
func assignValue(dest, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Pointer || destValue.IsNil() {
		return fmt.Errorf("cache destination must be a non-nil pointer, got %T", dest)
	}

	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}

	sourceValue := reflect.ValueOf(value)
	if !sourceValue.Type().AssignableTo(destValue.Elem().Type()) {
		return fmt.Errorf("cached value type %T does not fit destination %s", value, destValue.Elem().Type())
	}

	destValue.Elem().Set(sourceValue)
	return nil
}

// RistrettoCache is the in-process implementation.
type RistrettoCache struct {
	store       *ristretto.Cache
	singleGroup singleflight.Group
}

type Config struct {
	// MaxCost is the maximum cost of the cache (in bytes)
	MaxCost int64
	// NumCounters is the number of counters for admission tracking
	NumCounters int64
	// BufferItems is the number of items to buffer per get
	BufferItems int64
}

func DefaultConfig() *Config {
	return &Config{
		MaxCost:     1 << 26, // 64MB
		NumCounters: 1e6,
		BufferItems: 64,
	}
}

func New(config *Config) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	cache := &RistrettoCache{
		store: store,
	}
	cache.store.Wait()

	return cache, nil
}

var _ Cache = (*RistrettoCache)(nil)

func (c *RistrettoCache) Get(ctx context.Context, key string, dest any) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	value, found := c.store.Get(key)
	if !found {
		return false
	}

	if err := assignValue(dest, value); err != nil {
		slog.Error("reading cached value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}

	return true
}

func (c *RistrettoCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}
	return c.store.SetWithTTL(key, value, 1, ttl)
}

func (c *RistrettoCache) Delete(ctx context.Context, key string) {
	c.store.Del(key)
}

// GetOrSet retrieves a value, loading and storing it on a miss.
// Concurrent misses for the same key are collapsed into one loader call
// through singleflight.
func (c *RistrettoCache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, loader func() (any, error)) error {
	if found := c.Get(ctx, key, dest); found {
		return nil
	}

	value, err, _ := c.singleGroup.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if value, found := c.store.Get(key); found {
			return value, nil
		}

		value, err := loader()
		if err != nil {
			return nil, err
		}

		c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return err
	}

	return assignValue(dest, value)
}
