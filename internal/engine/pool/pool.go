// Package pool runs fingerprint computation across a fixed set of workers.
package pool

import (
	"context"

	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of fingerprinting a single image. Err is set when
// the image could not be decoded; such outcomes carry no fingerprint.
type Outcome struct {
	Record      domain.ImageRecord
	Fingerprint domain.Fingerprint
	Err         error
}

// Pool fans image records out to a fixed number of workers, each computing
// fingerprints one image at a time.
//
// Cancellation is cooperative: the context is polled between work units by
// both the dispatcher and the workers, so an in-flight image always finishes
// and is reported, while no new image is picked up afterwards. A fingerprint
// is therefore either complete or absent, never partial.
type Pool struct {
	source ports.ImageSource
	size   int
}

// New creates a pool of size workers reading images from source.
// Callers resolve defaulting and clamping before construction.
func New(source ports.ImageSource, size int) *Pool {
	return &Pool{source: source, size: size}
}

// Run dispatches records to the workers and returns the outcome channel.
// Every dispatched record yields exactly one outcome, in completion order.
// The channel is closed once all workers have drained; callers must consume
// it fully, also after cancelling, to collect in-flight results.
func (p *Pool) Run(ctx context.Context, records []domain.ImageRecord) (<-chan Outcome, error) {
	if p.source == nil || p.size < 1 {
		return nil, zerr.With(domain.ErrPoolStart, "workers", p.size)
	}

	feed := make(chan domain.ImageRecord)
	outcomes := make(chan Outcome, p.size)

	go func() {
		defer close(feed)
		for _, rec := range records {
			select {
			case <-ctx.Done():
				return
			case feed <- rec:
			}
		}
	}()

	var g errgroup.Group
	for range p.size {
		g.Go(func() error {
			for {
				// Poll cancellation before taking new work so an interrupt
				// never dispatches another image.
				if ctx.Err() != nil {
					return nil
				}
				select {
				case <-ctx.Done():
					return nil
				case rec, ok := <-feed:
					if !ok {
						return nil
					}
					outcomes <- p.process(rec)
				}
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(outcomes)
	}()

	return outcomes, nil
}

func (p *Pool) process(rec domain.ImageRecord) Outcome {
	fp, err := p.source.Fingerprint(rec.Path)
	return Outcome{Record: rec, Fingerprint: fp, Err: err}
}
