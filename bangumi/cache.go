package bangumi

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/anisan-cli/bgmsync/filesystem"
	"github.com/anisan-cli/bgmsync/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

const (
	subjectLifetime = 7 * 24 * time.Hour
	// Airing seasons gain episodes weekly.
	episodeLifetime = 24 * time.Hour
)

// cacheData is the on-disk layout of a cache file.
type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher keeps catalog listings between runs. A nil cacher never hits and ignores writes.
type cacher[K comparable, T any] struct {
	mu       sync.Mutex
	internal *gache.Cache[*cacheData[K, T]]
}

func newCacher[K comparable, T any](name string, lifetime time.Duration) *cacher[K, T] {
	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](
			&gache.Options{
				Path:       filepath.Join(where.Cache(), name),
				Lifetime:   lifetime,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

// Get retrieves the value stored under key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	if c == nil {
		return mo.None[T]()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

// Set persists a key-value pair.
func (c *cacher[K, T]) Set(key K, value T) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

// Delete removes the entry stored under key.
func (c *cacher[K, T]) Delete(key K) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		return nil
	}

	delete(data.Entries, key)
	return c.internal.Set(data)
}
