package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Cache slot keys. Each slot is overwritten wholesale on every change of
// its owning slice.
const (
	CacheKeyCartItems       = "cartItems"
	CacheKeyShippingAddress = "shippingAddress"
	CacheKeyPaymentMethod   = "paymentMethod"
	CacheKeyUserInfo        = "userInfo"
)

// Cache is the durable client-side mirror of selected slice state. Get
// reports false when the slot has never been written.
type Cache interface {
	Get(key string, out interface{}) (bool, error)
	Put(key string, v interface{}) error
	Delete(key string) error
}

// DirCache keeps one JSON file per slot inside a directory.
type DirCache struct {
	dir string
}

func NewDirCache(dir string) (*DirCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirCache{dir: dir}, nil
}

func (c *DirCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *DirCache) Get(key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, out)
}

func (c *DirCache) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

func (c *DirCache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemCache is an in-memory Cache used in tests.
type MemCache struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemCache() *MemCache {
	return &MemCache{slots: make(map[string][]byte)}
}

func (c *MemCache) Get(key string, out interface{}) (bool, error) {
	c.mu.Lock()
	data, ok := c.slots[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func (c *MemCache) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.slots[key] = data
	c.mu.Unlock()
	return nil
}

func (c *MemCache) Delete(key string) error {
	c.mu.Lock()
	delete(c.slots, key)
	c.mu.Unlock()
	return nil
}
