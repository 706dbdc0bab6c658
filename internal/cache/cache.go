package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key builds a bounded key from free-form parts such as search parameters.
func Key(namespace string, parts ...any) string {
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = strings.ToLower(strings.TrimSpace(fmt.Sprint(p)))
	}
	sum := sha1.Sum([]byte(strings.Join(ss, "\x1f")))
	return namespace + ":" + hex.EncodeToString(sum[:10])
}
