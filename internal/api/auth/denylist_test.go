package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDenylist()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Already expired tokens need no entry.
	require.NoError(t, d.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = d.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := NewRedisDenylist(client)

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	assert.True(t, mr.Exists(redisDenylistPrefix+"jti-1"))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_RevokeIfNewClaimsOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backends := map[string]Denylist{
		"memory": NewMemoryDenylist(),
		"redis":  NewRedisDenylist(client),
	}
	for name, d := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			until := time.Now().Add(time.Minute)

			var wins atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := d.RevokeIfNew(ctx, "jti-"+name, until)
					assert.NoError(t, err)
					if ok {
						wins.Add(1)
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, int32(1), wins.Load())

			revoked, err := d.IsRevoked(ctx, "jti-"+name)
			require.NoError(t, err)
			assert.True(t, revoked)

			// Expired tokens are never claimed.
			ok, err := d.RevokeIfNew(ctx, "stale-"+name, time.Now().Add(-time.Second))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisDenylist_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	d := NewRedisDenylist(client)
	_, err := d.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}
