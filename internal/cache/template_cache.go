package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storeaudit/internal/model"
)

// TemplateCache keeps fully populated templates close to the scoring path
type TemplateCache interface {
	Get(ctx context.Context, id string) (*model.Template, error)
	Set(ctx context.Context, tpl *model.Template) error
	Invalidate(ctx context.Context, id string) error
}

type templateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a new template cache
func NewTemplateCache(client *redis.Client, ttl time.Duration) TemplateCache {
	return &templateCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *templateCache) key(id string) string {
	return fmt.Sprintf("template:%s", id)
}

// Get returns nil, nil on a cache miss
func (c *templateCache) Get(ctx context.Context, id string) (*model.Template, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tpl model.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (c *templateCache) Set(ctx context.Context, tpl *model.Template) error {
	data, err := json.Marshal(tpl)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(tpl.ID), data, c.ttl).Err()
}

func (c *templateCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
