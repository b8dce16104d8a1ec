// Package driver runs a simulation: render, wait for a trigger, advance, repeat.
package driver

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-torus/model"
)

// errFinished stops the loop once the generation limit is reached
var errFinished = errors.New("generation limit reached")

// Source sends triggers until ctx is done or the source runs dry.
// Returning, with or without an error, ends the run.
type Source interface {
	Pump(ctx context.Context, triggers chan<- Trigger) error
}

// Driver owns the simulation for the duration of Run. Only the loop goroutine
// touches the grid; the source goroutine only sends triggers.
type Driver struct {
	Sim      *model.Simulation
	Renderer model.Renderer
	Source   Source

	// MaxGenerations stops the run after that many advances, 0 means no limit
	MaxGenerations int

	// OnFrame runs after each frame is displayed, on the loop goroutine
	OnFrame func(sim *model.Simulation) error

	// Reseed populates the grid again after a Restart trigger has cleared it
	Reseed func(sim *model.Simulation)
}

// Run renders the seed, then advances or restarts once per trigger. It returns nil when
// ctx is cancelled, the source is exhausted or the generation limit is hit.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.frame(); err != nil {
		return err
	}
	if d.limitReached() {
		return nil
	}

	triggers := make(chan Trigger)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(triggers)
		return d.Source.Pump(ctx, triggers)
	})
	eg.Go(func() error {
		return d.loop(ctx, triggers)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errFinished) {
		return err
	}
	return nil
}

func (d *Driver) loop(ctx context.Context, triggers <-chan Trigger) error {
	for {
		var t Trigger
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-triggers:
			if !ok {
				return nil
			}
			t = next
		}

		switch t {
		case Restart:
			d.Sim.Reset()
			if d.Reseed != nil {
				d.Reseed(d.Sim)
			}
		default:
			d.Sim.Advance()
		}
		if err := d.frame(); err != nil {
			return err
		}
		if d.limitReached() {
			return errFinished
		}
	}
}

func (d *Driver) frame() error {
	if err := d.Renderer.Clear(); err != nil {
		return err
	}
	if err := d.Renderer.Display(d.Sim.Grid()); err != nil {
		return err
	}
	if d.OnFrame != nil {
		return d.OnFrame(d.Sim)
	}
	return nil
}

func (d *Driver) limitReached() bool {
	return d.MaxGenerations > 0 && d.Sim.Generation() >= d.MaxGenerations
}
