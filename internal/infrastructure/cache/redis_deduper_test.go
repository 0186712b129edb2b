package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

type fakeRedis struct {
	keys map[string]time.Duration
	err  error
}

func (f *fakeRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	_, exists := f.keys[key]
	if !exists {
		f.keys[key] = expiration
	}
	cmd.SetVal(!exists)
	return cmd
}

func TestRedisEventDeduper(t *testing.T) {
	ctx := context.Background()

	t.Run("mark then seen", func(t *testing.T) {
		rdb := &fakeRedis{keys: map[string]time.Duration{}}
		d := NewRedisEventDeduper(rdb)

		seen, err := d.Seen(ctx, "evt_1")
		if err != nil || seen {
			t.Fatalf("expected unseen, got %v (%v)", seen, err)
		}
		if err := d.MarkProcessed(ctx, "evt_1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := d.MarkProcessed(ctx, "evt_1"); err != nil {
			t.Fatalf("second mark must be a no-op, got %v", err)
		}
		seen, err = d.Seen(ctx, "evt_1")
		if err != nil || !seen {
			t.Fatalf("expected seen, got %v (%v)", seen, err)
		}
		if ttl := rdb.keys["webhook:event:evt_1"]; ttl != webhookEventTTL {
			t.Fatalf("expected ttl %v, got %v", webhookEventTTL, ttl)
		}
	})

	t.Run("errors propagate", func(t *testing.T) {
		d := NewRedisEventDeduper(&fakeRedis{err: errors.New("connection refused")})
		if _, err := d.Seen(ctx, "evt_1"); err == nil {
			t.Fatalf("expected error")
		}
		if err := d.MarkProcessed(ctx, "evt_1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
