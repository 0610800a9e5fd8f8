package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Denylist remembers revoked token ids until the token would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeIfNew revokes jti and reports whether this call did so. Concurrent callers
	// presenting the same jti see true at most once.
	RevokeIfNew(ctx context.Context, jti string, until time.Time) (bool, error)
}

var (
	_ Denylist = (*MemoryDenylist)(nil)
	_ Denylist = (*RedisDenylist)(nil)
)

type MemoryDenylist struct {
	entries *cache.Cache
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: cache.New(time.Hour, 10*time.Minute)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	d.entries.Set(jti, struct{}{}, ttl)
	return nil
}

func (d *MemoryDenylist) RevokeIfNew(_ context.Context, jti string, until time.Time) (bool, error) {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return false, nil
	}
	// Add fails when the key is already present.
	return d.entries.Add(jti, struct{}{}, ttl) == nil, nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := d.entries.Get(jti)
	return found, nil
}

const redisDenylistPrefix = "auth:revoked:"

// RedisDenylist shares revocations across API replicas.
type RedisDenylist struct {
	client redis.Cmdable
}

func NewRedisDenylist(client redis.Cmdable) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, redisDenylistPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

func (d *RedisDenylist) RevokeIfNew(ctx context.Context, jti string, until time.Time) (bool, error) {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return false, nil
	}
	ok, err := d.client.SetNX(ctx, redisDenylistPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error revoking token: %w", err)
	}
	return ok, nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, redisDenylistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return n > 0, nil
}
