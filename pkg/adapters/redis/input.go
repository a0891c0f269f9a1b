package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPollInterval is how often Input checks for remote presses.
const DefaultPollInterval = 50 * time.Millisecond

// Press records a remote press of b. It is consumed by the next poll of an Input.
func (a *Adapter) Press(ctx context.Context, b domain.Button) error {
	if err := a.client.Set(ctx, a.key("input", string(b)), "1", a.pressTTL).Err(); err != nil {
		return fmt.Errorf("redis press %s failed: %w", b, err)
	}
	return nil
}

// Input implements ports.InputSource from remote presses.
// Presses are moved from Redis into a local latch by Listen, so a tick never waits on the network.
type Input struct {
	*memory.Input
	adapter *Adapter
}

// Input creates a remote button source.
func (a *Adapter) Input() *Input {
	return &Input{
		Input:   memory.NewInput(),
		adapter: a,
	}
}

// Poll moves pending remote presses into the latch. Each press is read and deleted atomically (GETDEL).
func (in *Input) Poll(ctx context.Context) error {
	a := in.adapter
	var skip, reset *backend.StringCmd
	_, err := a.client.Pipelined(ctx, func(pipe backend.Pipeliner) error {
		skip = pipe.GetDel(ctx, a.key("input", string(domain.ButtonSkip)))
		reset = pipe.GetDel(ctx, a.key("input", string(domain.ButtonReset)))
		return nil
	})
	if err != nil && !errors.Is(err, backend.Nil) {
		return fmt.Errorf("redis poll failed: %w", err)
	}

	if skip.Val() != "" {
		in.Press(domain.ButtonSkip)
	}
	if reset.Val() != "" {
		in.Press(domain.ButtonReset)
	}
	return nil
}

// Listen polls every interval until ctx is done. Failures are logged and polling continues.
func (in *Input) Listen(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := in.Poll(ctx); err != nil && ctx.Err() == nil {
				in.adapter.logger.Warn("remote input unavailable", "err", err)
			}
		}
	}
}
