package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"courseforge/internal/model"
)

const latestKey = "course:latest"

// CourseCache caches published course records for view-mode reads
type CourseCache interface {
	Set(ctx context.Context, record *model.CourseRecord) error
	Get(ctx context.Context, id string) (*model.CourseRecord, error)
	GetLatest(ctx context.Context) (*model.CourseRecord, error)
	Invalidate(ctx context.Context, id string) error
}

type courseCache struct {
	client *redis.Client
}

// NewCourseCache creates a new course cache
func NewCourseCache(client *redis.Client) CourseCache {
	return &courseCache{
		client: client,
	}
}

func (c *courseCache) Set(ctx context.Context, record *model.CourseRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, "course:"+record.ID, data, 10*time.Minute).Err(); err != nil {
		return err
	}
	return c.client.Set(ctx, latestKey, data, 10*time.Minute).Err()
}

func (c *courseCache) Get(ctx context.Context, id string) (*model.CourseRecord, error) {
	return c.get(ctx, "course:"+id)
}

func (c *courseCache) GetLatest(ctx context.Context) (*model.CourseRecord, error) {
	return c.get(ctx, latestKey)
}

func (c *courseCache) get(ctx context.Context, key string) (*model.CourseRecord, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var record model.CourseRecord
	err = json.Unmarshal([]byte(data), &record)
	return &record, err
}

func (c *courseCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, "course:"+id, latestKey).Err()
}
