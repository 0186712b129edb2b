package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"agency_billing/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
)

const (
	webhookEventKeyPrefix = "webhook:event:"
	webhookEventTTL       = 30 * 24 * time.Hour
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[cache][redis] ping failed addr=%s err=%v", rdb.Options().Addr, err)
	} else {
		log.Printf("[cache][redis] connected addr=%s", rdb.Options().Addr)
	}
	return rdb
}

// RedisCommands is the subset of redis.Cmdable the deduper needs.
type RedisCommands interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisEventDeduper remembers processed webhook event ids for a month.
type RedisEventDeduper struct {
	rdb RedisCommands
}

var _ interfaces.IEventDeduper = (*RedisEventDeduper)(nil)

func NewRedisEventDeduper(rdb RedisCommands) *RedisEventDeduper {
	return &RedisEventDeduper{rdb: rdb}
}

func (d *RedisEventDeduper) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, webhookEventKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *RedisEventDeduper) MarkProcessed(ctx context.Context, eventID string) error {
	return d.rdb.SetNX(ctx, webhookEventKeyPrefix+eventID, time.Now().UTC().Format(time.RFC3339), webhookEventTTL).Err()
}
