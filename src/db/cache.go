package db

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache holds provider metadata that rarely changes: Plaid webhook
// verification keys and institution records. Request data is never cached.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration
}

func NewCache(ttl time.Duration) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     1000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: store, ttl: ttl}, nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores value and waits until it is visible to Get.
func (c *Cache) Set(key string, value interface{}) {
	c.store.SetWithTTL(key, value, 1, c.ttl)
	c.store.Wait()
}

func (c *Cache) Del(key string) {
	c.store.Del(key)
}

func (c *Cache) Close() {
	c.store.Close()
}
