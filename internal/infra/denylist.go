package infra

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "pentagon:revoked:"

// RedisDenylist stores revoked token IDs until their natural expiry, so a
// logged-out token stops working before its exp claim runs out.
type RedisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.rdb.Set(ctx, denylistPrefix+jti, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, denylistPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
