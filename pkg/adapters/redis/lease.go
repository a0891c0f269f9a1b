package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrLeaseHeld is returned when another host already drives the installation.
var ErrLeaseHeld = errors.New("installation is driven by another host")

// Lease is a Redis-backed exclusive claim on an installation (SET NX PX).
type Lease struct {
	adapter *Adapter
	key     string
	value   string
	ttl     time.Duration
}

// Acquire claims the installation for holder. It fails fast with ErrLeaseHeld.
func (a *Adapter) Acquire(ctx context.Context, holder string, ttl time.Duration) (*Lease, error) {
	l := &Lease{
		adapter: a,
		key:     a.key("lease"),
		// Value carries a nonce so only this holder can refresh or release it.
		value: fmt.Sprintf("%s:%d", holder, time.Now().UnixNano()),
		ttl:   ttl,
	}

	ok, err := a.client.SetNX(ctx, l.key, l.value, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring lease: %w", err)
	}
	if !ok {
		holder, _ := a.client.Get(ctx, l.key).Result()
		return nil, fmt.Errorf("%w (%s)", ErrLeaseHeld, holder)
	}
	return l, nil
}

const refreshScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("pexpire", KEYS[1], ARGV[2])
	else
		return 0
	end
`

const releaseScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// Refresh extends the lease. It returns ErrLeaseHeld if the lease was lost.
func (l *Lease) Refresh(ctx context.Context) error {
	n, err := l.adapter.client.Eval(ctx, refreshScript, []string{l.key}, l.value, l.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("redis error refreshing lease: %w", err)
	}
	if n == 0 {
		return ErrLeaseHeld
	}
	return nil
}

// Keep refreshes the lease at a third of its TTL until ctx is done.
// lost is called once if the lease cannot be kept.
func (l *Lease) Keep(ctx context.Context, lost func(error)) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Refresh(ctx); err != nil {
				if ctx.Err() == nil && lost != nil {
					lost(err)
				}
				return
			}
		}
	}
}

// Release frees the lease if it is still held by this holder.
func (l *Lease) Release(ctx context.Context) error {
	return l.adapter.client.Eval(ctx, releaseScript, []string{l.key}, l.value).Err()
}
