// Package redis connects a sceneflow host to Redis: remote operator buttons,
// a status mirror for dashboards and a lease so a single host drives an installation.
package redis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Default key layout: <prefix>input:skip, <prefix>input:reset, <prefix>status, <prefix>lease.
const (
	DefaultPrefix    = "sceneflow:"
	DefaultStatusTTL = 30 * time.Second
	DefaultPressTTL  = 10 * time.Second
)

// Adapter holds the client and key layout shared by the Redis components.
type Adapter struct {
	client    *backend.Client
	prefix    string
	statusTTL time.Duration
	pressTTL  time.Duration
	logger    *slog.Logger
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithPrefix sets the key prefix. Several installations can share a Redis with distinct prefixes.
func WithPrefix(prefix string) Option {
	return func(a *Adapter) {
		a.prefix = prefix
	}
}

// WithStatusTTL sets how long the status hash outlives the last publish.
func WithStatusTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		a.statusTTL = ttl
	}
}

// WithPressTTL bounds how long an unconsumed remote press stays pending.
func WithPressTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		a.pressTTL = ttl
	}
}

// WithLogger sets the logger used for polling failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewFromClient creates an Adapter over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client:    client,
		prefix:    DefaultPrefix,
		statusTTL: DefaultStatusTTL,
		pressTTL:  DefaultPressTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a
}

// Connect dials addr and checks the connection.
func Connect(ctx context.Context, addr string, opts ...Option) (*Adapter, error) {
	client := backend.NewClient(&backend.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", addr, err)
	}
	return NewFromClient(client, opts...), nil
}

// Close closes the client.
func (a *Adapter) Close() error {
	return a.client.Close()
}

func (a *Adapter) key(parts ...string) string {
	k := a.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}
