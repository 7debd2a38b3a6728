package service

import (
	"context"
	"time"
)

// CooldownStore tracks per-device report cooldowns. The Redis implementation
// lives in persistence; tests substitute an in-memory fake.
type CooldownStore interface {
	Active(ctx context.Context, serial string) (bool, error)
	Set(ctx context.Context, serial string, ttl time.Duration) error
}

// SweepLock serializes the periodic-maintenance sweep. Acquire returns false
// when the sweep already ran for the given day.
type SweepLock interface {
	Acquire(ctx context.Context, day string) (bool, error)
	Release(ctx context.Context, day string) error
}
