// Package usage counts upstream API calls per provider and UTC day in Redis.
package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Meter はプロバイダーごとの日次呼び出し回数をRedisに記録します。
// rdb が nil の場合は何も記録せず、Count は常に0を返します。
type Meter struct {
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

// NewMeter creates a Meter. If namespace is empty, it uses "usage".
func NewMeter(rdb *redis.Client, namespace string) *Meter {
	if namespace == "" {
		namespace = "usage"
	}
	return &Meter{rdb: rdb, namespace: namespace, now: time.Now}
}

// Enabled reports whether a Redis client is configured.
func (m *Meter) Enabled() bool {
	return m != nil && m.rdb != nil
}

// Record increments today's counter for provider. The first increment of a day
// sets the key to expire at the next UTC midnight.
func (m *Meter) Record(ctx context.Context, provider string) (int64, error) {
	if !m.Enabled() {
		return 0, nil
	}

	now := m.now()
	key := m.key(provider, now)

	n, err := m.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("usage incr %s: %w", key, err)
	}
	if n == 1 {
		if err := m.rdb.Expire(ctx, key, TimeUntilNextUTCMidnight(now)).Err(); err != nil {
			return n, fmt.Errorf("usage expire %s: %w", key, err)
		}
	}
	return n, nil
}

// Count は今日のプロバイダーの呼び出し回数を返します。キーが無い場合は0です。
func (m *Meter) Count(ctx context.Context, provider string) (int64, error) {
	if !m.Enabled() {
		return 0, nil
	}

	key := m.key(provider, m.now())
	n, err := m.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("usage get %s: %w", key, err)
	}
	return n, nil
}

// key generates "<namespace>:<provider>:<YYYY-MM-DD>" for the UTC day of now.
func (m *Meter) key(provider string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s", m.namespace, safe(provider), now.UTC().Format(dayLayout))
}
