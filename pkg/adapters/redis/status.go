package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Status is the mirror of a running installation as stored in Redis.
type Status struct {
	domain.Snapshot
	UpdatedAt time.Time
}

// Publish implements ports.StatusPublisher: the snapshot is written to a hash that expires after the status TTL.
func (a *Adapter) Publish(ctx context.Context, s domain.Snapshot) error {
	key := a.key("status")
	_, err := a.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"scene":      s.Scene,
			"activation": s.Activation,
			"phase":      string(s.State.Phase),
			"elapsed":    formatFloat(s.State.Elapsed),
			"opacity":    formatFloat(s.Opacity),
			"volume":     formatFloat(s.Volume),
			"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		if a.statusTTL > 0 {
			pipe.Expire(ctx, key, a.statusTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// ErrNoStatus is returned by ReadStatus when no host published recently.
var ErrNoStatus = errors.New("no status published")

// ReadStatus reads the mirrored status.
func (a *Adapter) ReadStatus(ctx context.Context) (Status, error) {
	fields, err := a.client.HGetAll(ctx, a.key("status")).Result()
	if err != nil {
		return Status{}, fmt.Errorf("redis read status failed: %w", err)
	}
	if len(fields) == 0 {
		return Status{}, ErrNoStatus
	}

	var st Status
	st.Scene = fields["scene"]
	st.State.Phase = domain.Phase(fields["phase"])
	st.Activation, _ = strconv.Atoi(fields["activation"])
	st.State.Elapsed, _ = strconv.ParseFloat(fields["elapsed"], 64)
	st.Opacity, _ = strconv.ParseFloat(fields["opacity"], 64)
	st.Volume, _ = strconv.ParseFloat(fields["volume"], 64)
	st.UpdatedAt, _ = time.Parse(time.RFC3339Nano, fields["updated_at"])
	return st, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
