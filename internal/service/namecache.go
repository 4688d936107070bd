package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/staffing-service/internal/repository"
)

const nameCacheTTL = 10 * time.Minute

// NameResolver maps user ids to display names for denormalizing reads.
type NameResolver interface {
	Names(ctx context.Context, ids []string) (map[string]string, error)
	Invalidate(ctx context.Context, id string)
}

type nameCache struct {
	client *redis.Client
	users  repository.UserRepository
}

// NewNameCache returns a resolver backed by Redis in front of the user
// repository. A nil client degrades to direct repository reads.
func NewNameCache(client *redis.Client, users repository.UserRepository) NameResolver {
	return &nameCache{client: client, users: users}
}

func (c *nameCache) Names(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	var misses []string

	for _, id := range ids {
		if c.client != nil {
			if name, err := c.client.Get(ctx, nameKey(id)).Result(); err == nil {
				names[id] = name
				continue
			}
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return names, nil
	}

	users, err := c.users.ListByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		names[user.ID] = user.Name
		if c.client != nil {
			_ = c.client.Set(ctx, nameKey(user.ID), user.Name, nameCacheTTL).Err()
		}
	}
	return names, nil
}

func (c *nameCache) Invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, nameKey(id)).Err()
}

func nameKey(id string) string {
	return "user:name:" + id
}
