package config

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the job search cache, the alert stream and notification pub/sub.
var RedisClient *redis.Client

// RedisOptions accepts a host:port or a redis:// / rediss:// URL (managed Redis hands out URLs).
func RedisOptions(val string) (*redis.Options, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, errors.New("REDIS_ADDR (or REDIS_URI/REDIS_URL) is not set")
	}

	var opt *redis.Options
	if strings.HasPrefix(val, "redis://") || strings.HasPrefix(val, "rediss://") {
		o, err := redis.ParseURL(val)
		if err != nil {
			return nil, err
		}
		opt = o
	} else {
		opt = &redis.Options{Addr: val}
	}

	// XREADGROUP blocks for 5s per call; keep reads from timing out first.
	opt.ReadTimeout = 10 * time.Second
	if opt.PoolSize == 0 {
		opt.PoolSize = 20
	}
	return opt, nil
}

func InitRedis(val string) error {
	opt, err := RedisOptions(val)
	if err != nil {
		return err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RedisClient = client
	return nil
}
