package driver

import (
	"context"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-torus/model"
)

// recordingRenderer keeps a copy of every displayed frame
type recordingRenderer struct {
	clears  int
	frames  [][]uint8
	failAt  int
	failErr error
}

func (r *recordingRenderer) Clear() error {
	r.clears++
	return nil
}

func (r *recordingRenderer) Display(v model.View) error {
	if r.failErr != nil && len(r.frames) == r.failAt {
		return r.failErr
	}
	frame := make([]uint8, 0, v.GetWidth()*v.GetHeight())
	for y := range v.GetHeight() {
		for x := range v.GetWidth() {
			frame = append(frame, v.Get(x, y))
		}
	}
	r.frames = append(r.frames, frame)
	return nil
}

func newBlinker(t *testing.T) *model.Simulation {
	t.Helper()
	sim, err := model.NewSimulation(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	sim.Seed(model.Blinker, 2, 2)
	return sim
}

func runWithTimeout(t *testing.T, d *Driver) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.Run(ctx)
	if ctx.Err() != nil {
		t.Fatal("driver did not stop on its own")
	}
	return err
}

func TestRunLineSourceAdvancesPerLine(t *testing.T) {
	sim := newBlinker(t)
	rec := &recordingRenderer{}
	d := &Driver{
		Sim:      sim,
		Renderer: rec,
		Source:   LineSource{R: strings.NewReader("\n\ngarbage\n")},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sim.Generation() != 3 {
		t.Fatalf("Generation() = %d, want 3", sim.Generation())
	}
	if len(rec.frames) != 4 || rec.clears != 4 {
		t.Fatalf("rendered %d frames with %d clears, want 4 each", len(rec.frames), rec.clears)
	}
	// the blinker alternates, so frames 0 and 2 match and 1 and 3 match
	if string(rec.frames[0]) != string(rec.frames[2]) || string(rec.frames[1]) != string(rec.frames[3]) {
		t.Fatal("blinker frames do not alternate")
	}
	if string(rec.frames[0]) == string(rec.frames[1]) {
		t.Fatal("blinker did not change between generations")
	}
}

func TestRunLineSourceEmptyInput(t *testing.T) {
	sim := newBlinker(t)
	rec := &recordingRenderer{}
	d := &Driver{Sim: sim, Renderer: rec, Source: LineSource{R: strings.NewReader("")}}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 0 || len(rec.frames) != 1 {
		t.Fatalf("generation=%d frames=%d, want only the seed frame", sim.Generation(), len(rec.frames))
	}
}

func TestRunLineSourceOverlongLine(t *testing.T) {
	sim := newBlinker(t)
	input := "\n" + strings.Repeat("x", 70000) + "\n\n"
	d := &Driver{Sim: sim, Renderer: &recordingRenderer{}, Source: LineSource{R: strings.NewReader(input)}}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 3 {
		t.Fatalf("Generation() = %d, want 3", sim.Generation())
	}
}

func TestRunLineSourceIgnoresUnterminatedTail(t *testing.T) {
	sim := newBlinker(t)
	d := &Driver{Sim: sim, Renderer: &recordingRenderer{}, Source: LineSource{R: strings.NewReader("\n\npartial")}}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 2 {
		t.Fatalf("Generation() = %d, want 2", sim.Generation())
	}
}

func TestRunLineSourceReadError(t *testing.T) {
	boom := errors.New("boom")
	d := &Driver{
		Sim:      newBlinker(t),
		Renderer: &recordingRenderer{},
		Source:   LineSource{R: iotest.ErrReader(boom)},
	}

	if err := runWithTimeout(t, d); !errors.Is(err, boom) {
		t.Fatalf("Run err = %v, want %v", err, boom)
	}
}

func TestRunTickerStopsAtMaxGenerations(t *testing.T) {
	sim := newBlinker(t)
	rec := &recordingRenderer{}
	d := &Driver{
		Sim:            sim,
		Renderer:       rec,
		Source:         TickerSource{Delay: time.Millisecond},
		MaxGenerations: 5,
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 5 {
		t.Fatalf("Generation() = %d, want 5", sim.Generation())
	}
	if len(rec.frames) != 6 {
		t.Fatalf("rendered %d frames, want 6", len(rec.frames))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := newBlinker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &Driver{
		Sim:      sim,
		Renderer: &recordingRenderer{},
		Source:   TickerSource{Delay: time.Hour},
		OnFrame: func(*model.Simulation) error {
			cancel()
			return nil
		},
	}

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
	if sim.Generation() != 0 {
		t.Fatalf("Generation() = %d, want 0", sim.Generation())
	}
}

func TestRunReturnsRenderError(t *testing.T) {
	broken := errors.New("terminal gone")
	d := &Driver{
		Sim:      newBlinker(t),
		Renderer: &recordingRenderer{failAt: 2, failErr: broken},
		Source:   TickerSource{Delay: 0},
	}

	if err := runWithTimeout(t, d); !errors.Is(err, broken) {
		t.Fatalf("Run err = %v, want %v", err, broken)
	}
}

func TestRunOnFrameSeesEveryGeneration(t *testing.T) {
	var seen []int
	d := &Driver{
		Sim:            newBlinker(t),
		Renderer:       &recordingRenderer{},
		Source:         TickerSource{Delay: 0},
		MaxGenerations: 3,
		OnFrame: func(sim *model.Simulation) error {
			seen = append(seen, sim.Generation())
			return nil
		},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("OnFrame saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("OnFrame saw %v, want %v", seen, want)
		}
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func TestRunScreenSourceManual(t *testing.T) {
	screen := newSimScreen(t)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	sim := newBlinker(t)
	d := &Driver{
		Sim:      sim,
		Renderer: &recordingRenderer{},
		Source:   ScreenSource{Screen: screen, Manual: true},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 2 {
		t.Fatalf("Generation() = %d, want 2", sim.Generation())
	}
}

func TestRunScreenSourceAutoQuits(t *testing.T) {
	screen := newSimScreen(t)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	sim := newBlinker(t)
	d := &Driver{
		Sim:      sim,
		Renderer: &recordingRenderer{},
		Source:   ScreenSource{Screen: screen, Delay: time.Hour},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 0 {
		t.Fatalf("Generation() = %d, want 0", sim.Generation())
	}
}

func TestRunScreenSourceAutoTicks(t *testing.T) {
	sim := newBlinker(t)
	d := &Driver{
		Sim:            sim,
		Renderer:       &recordingRenderer{},
		Source:         ScreenSource{Screen: newSimScreen(t), Delay: time.Millisecond},
		MaxGenerations: 4,
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.Generation() != 4 {
		t.Fatalf("Generation() = %d, want 4", sim.Generation())
	}
}

func TestRunScreenSourceRestart(t *testing.T) {
	screen := newSimScreen(t)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	sim := newBlinker(t)
	rec := &recordingRenderer{}
	reseeds := 0
	d := &Driver{
		Sim:      sim,
		Renderer: rec,
		Source:   ScreenSource{Screen: screen, Manual: true},
		Reseed: func(sim *model.Simulation) {
			reseeds++
			sim.Seed(model.Blinker, 2, 2)
		},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reseeds != 1 {
		t.Fatalf("Reseed called %d times, want 1", reseeds)
	}
	if sim.Generation() != 0 {
		t.Fatalf("Generation() = %d after restart, want 0", sim.Generation())
	}
	if len(rec.frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(rec.frames))
	}
	if string(rec.frames[2]) != string(rec.frames[0]) {
		t.Fatal("restart did not return to the seed")
	}
}

func TestRunRestartWithoutReseedClears(t *testing.T) {
	screen := newSimScreen(t)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	sim := newBlinker(t)
	d := &Driver{
		Sim:      sim,
		Renderer: &recordingRenderer{},
		Source:   ScreenSource{Screen: screen, Manual: true},
	}

	if err := runWithTimeout(t, d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := sim.Population(); n != 0 {
		t.Fatalf("Population() = %d after restart without reseed, want 0", n)
	}
}
