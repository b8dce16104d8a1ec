package driver

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// errQuit is returned internally when the user asks to leave the screen
var errQuit = errors.New("quit requested")

// Trigger tells the loop what to do next
type Trigger int

const (
	// Advance computes one generation
	Advance Trigger = iota
	// Restart clears the grid and seeds it again
	Restart
)

// TickerSource triggers an advance every Delay. Each wait starts a fresh
// timer after the previous trigger was consumed, so slow frames push later
// frames back instead of being skipped.
type TickerSource struct {
	Delay time.Duration
}

func (s TickerSource) Pump(ctx context.Context, triggers chan<- Trigger) error {
	for {
		timer := time.NewTimer(s.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if !send(ctx, triggers, Advance) {
			return nil
		}
	}
}

// LineSource triggers one advance per newline read from R. Line content is
// discarded whatever its length; end of input ends the run cleanly.
type LineSource struct {
	R io.Reader
}

func (s LineSource) Pump(ctx context.Context, triggers chan<- Trigger) error {
	var (
		lines   = make(chan struct{})
		readErr error
	)

	// Reads can block past cancellation, so the reader runs on its own
	// goroutine and is abandoned when ctx is done.
	go func() {
		defer close(lines)
		br := bufio.NewReader(s.R)
		for {
			_, err := br.ReadSlice('\n')
			if errors.Is(err, bufio.ErrBufferFull) {
				continue
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr = err
				}
				return
			}
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-lines:
			if !ok {
				if readErr != nil {
					return errors.Wrap(readErr, "[LineSource.Pump] failed to read input")
				}
				return nil
			}
		}

		if !send(ctx, triggers, Advance) {
			return nil
		}
	}
}

// ScreenSource reads key events from a tcell screen. Enter, space and 'n'
// advance when Manual is set; otherwise a TickerSource with Delay drives the
// run. 'r' restarts from the seed. 'q', Esc and Ctrl-C always end the run.
// Resize events repaint the screen.
type ScreenSource struct {
	Screen tcell.Screen
	Manual bool
	Delay  time.Duration
}

func (s ScreenSource) Pump(ctx context.Context, triggers chan<- Trigger) error {
	eg, ctx := errgroup.WithContext(ctx)

	if !s.Manual {
		eg.Go(func() error {
			return TickerSource{Delay: s.Delay}.Pump(ctx, triggers)
		})
	}
	eg.Go(func() error {
		return s.pumpKeys(ctx, triggers)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (s ScreenSource) pumpKeys(ctx context.Context, triggers chan<- Trigger) error {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go s.Screen.ChannelEvents(events, quit)

	for {
		var ev tcell.Event
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				// screen finalised
				return errQuit
			}
			ev = e
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.Screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return errQuit
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
				if !send(ctx, triggers, Restart) {
					return nil
				}
			case s.Manual && isAdvanceKey(ev):
				if !send(ctx, triggers, Advance) {
					return nil
				}
			}
		}
	}
}

func isAdvanceKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == ' ' || ev.Rune() == 'n')
}

func send(ctx context.Context, triggers chan<- Trigger, t Trigger) bool {
	select {
	case triggers <- t:
		return true
	case <-ctx.Done():
		return false
	}
}
