package runner

import (
	"context"
	"errors"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

type presenters []ports.Presenter

// Presenters fans a snapshot out to several presenters, in order. Nil entries are skipped.
func Presenters(ps ...ports.Presenter) ports.Presenter {
	var out presenters
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (ps presenters) Present(s domain.Snapshot) {
	for _, p := range ps {
		p.Present(s)
	}
}

type publishers []ports.StatusPublisher

// Publishers fans a snapshot out to several status publishers.
// Every publisher is called; their errors are joined.
func Publishers(ps ...ports.StatusPublisher) ports.StatusPublisher {
	var out publishers
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (ps publishers) Publish(ctx context.Context, s domain.Snapshot) error {
	var errs []error
	for _, p := range ps {
		if err := p.Publish(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
