package persistence

import (
	"context"
	"time"
)

const (
	sweepLockPrefix = "lab-support:maintenance:sweep:"
	cooldownPrefix  = "lab-support:report:cooldown:"
)

// SweepLock is a Redis-backed single-flight lock for the maintenance sweep.
// One key per calendar day keeps repeated or concurrent sweeps from
// double-inserting maintenance reports.
type SweepLock struct {
	redis *Redis
	ttl   time.Duration
}

// NewSweepLock builds a sweep lock with the given hold duration.
func NewSweepLock(redis *Redis, ttl time.Duration) *SweepLock {
	return &SweepLock{redis: redis, ttl: ttl}
}

// Acquire takes the day lock; it returns false when another sweep already
// ran (or is running) for that day.
func (l *SweepLock) Acquire(ctx context.Context, day string) (bool, error) {
	return l.redis.Client.SetNX(ctx, sweepLockPrefix+day, time.Now().Format(time.RFC3339), l.ttl).Result()
}

// Release drops the day lock early, e.g. when the sweep fails partway.
func (l *SweepLock) Release(ctx context.Context, day string) error {
	return l.redis.Client.Del(ctx, sweepLockPrefix+day).Err()
}

// CooldownStore tracks per-device report cooldowns server-side so the window
// holds across clients and browsers.
type CooldownStore struct {
	redis *Redis
}

// NewCooldownStore builds a Redis-backed cooldown store.
func NewCooldownStore(redis *Redis) *CooldownStore {
	return &CooldownStore{redis: redis}
}

// Active reports whether the device is still inside its cooldown window.
func (s *CooldownStore) Active(ctx context.Context, serial string) (bool, error) {
	n, err := s.redis.Client.Exists(ctx, cooldownPrefix+serial).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Set starts a cooldown window for the device.
func (s *CooldownStore) Set(ctx context.Context, serial string, ttl time.Duration) error {
	return s.redis.Client.Set(ctx, cooldownPrefix+serial, time.Now().Format(time.RFC3339), ttl).Err()
}
