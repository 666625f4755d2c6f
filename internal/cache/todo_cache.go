package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/MarianaSardo/todosAPI/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList = "todo:list"
	keyItem = "todo:item:"
)

// TodoCache caches the full todo list and single items in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list or nil if miss.
func (c *TodoCache) GetList(ctx context.Context) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list in cache.
func (c *TodoCache) SetList(ctx context.Context, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// GetItem returns the cached todo for id, or nil if miss.
func (c *TodoCache) GetItem(ctx context.Context, id int64) (*dom.Todo, error) {
	b, err := c.rdb.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t dom.Todo
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SetItem stores a single todo in cache.
func (c *TodoCache) SetItem(ctx context.Context, t dom.Todo) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, itemKey(t.ID), b, c.ttl).Err()
}

// Invalidate removes the list key and the item key for id (cache invalidation
// on write).
func (c *TodoCache) Invalidate(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, keyList, itemKey(id)).Err()
}

func itemKey(id int64) string {
	return keyItem + strconv.FormatInt(id, 10)
}
