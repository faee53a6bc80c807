package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const genderTTL = 24 * time.Hour

// GenderCache keeps username -> gender lookups out of the database for the
// directory's default-filter derivation. A nil cache always misses, so the
// service runs fine without Redis.
type GenderCache struct {
	client *redis.Client
}

func NewGenderCache(client *redis.Client) *GenderCache {
	return &GenderCache{client: client}
}

func (c *GenderCache) Get(ctx context.Context, username string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	gender, err := c.client.Get(ctx, genderKey(username)).Result()
	if err != nil {
		return "", false
	}
	return gender, true
}

func (c *GenderCache) Set(ctx context.Context, username, gender string) {
	if c == nil || c.client == nil {
		return
	}
	// Best effort; a failed write only costs a database lookup later.
	_ = c.client.Set(ctx, genderKey(username), gender, genderTTL).Err()
}

func genderKey(username string) string {
	return fmt.Sprintf("user:gender:%s", username)
}
