package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-torus/driver"
	"github.com/sheikhrachel/go-torus/model"
	"github.com/sheikhrachel/go-torus/utils"
)

// loadConfig reads the config file, falling back to defaults when it does not exist
func loadConfig(filename string) (utils.Config, error) {
	config, err := utils.LoadConfig(filename)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		return utils.DefaultConfig(), nil
	}
	return config, nil
}

// initializeGame builds the simulation described by config and returns it
// seeded, along with the function that seeds it again after a restart
func initializeGame(config utils.Config) (*model.Simulation, func(*model.Simulation), error) {
	sim, err := model.NewSimulation(config.Width, config.Height)
	if err != nil {
		return nil, nil, err
	}

	pattern, err := model.PatternByName(config.Pattern)
	if err != nil {
		return nil, nil, err
	}
	reseed := func(sim *model.Simulation) {
		sim.Seed(pattern, config.PatternOffsetX, config.PatternOffsetY)
	}
	reseed(sim)

	return sim, reseed, nil
}

// newRenderer picks the renderer for config. The returned cleanup must be
// called before exiting so the terminal is restored in screen mode.
func newRenderer(config utils.Config, out io.Writer) (model.Renderer, func(), error) {
	switch config.Renderer {
	case utils.RendererDebug:
		return &model.DebugRenderer{Out: out}, func() {}, nil
	case utils.RendererScreen:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, errors.Wrap(err, "[newRenderer] failed to create screen")
		}
		if err = screen.Init(); err != nil {
			return nil, nil, errors.Wrap(err, "[newRenderer] failed to initialise screen")
		}
		return model.NewScreenRenderer(screen, config.AliveGlyph, config.DeadGlyph), screen.Fini, nil
	default:
		r := model.NewTerminalRenderer(out)
		if config.AliveGlyph != "" {
			r.AliveGlyph = config.AliveGlyph
		}
		if config.DeadGlyph != "" {
			r.DeadGlyph = config.DeadGlyph
		}
		return r, func() {}, nil
	}
}

// newSource picks how generations are triggered
func newSource(config utils.Config, renderer model.Renderer, stdin io.Reader) driver.Source {
	if sr, ok := renderer.(*model.ScreenRenderer); ok {
		return driver.ScreenSource{
			Screen: sr.Screen(),
			Manual: config.Mode == utils.ModeManual,
			Delay:  config.FrameRate,
		}
	}
	if config.Mode == utils.ModeManual {
		return driver.LineSource{R: stdin}
	}
	return driver.TickerSource{Delay: config.FrameRate}
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sim *model.Simulation) {
	grid := sim.Grid()
	fmt.Printf("Grid: %dx%d | Pattern: %s | Initial living cells: %d\n",
		grid.GetWidth(), grid.GetHeight(), config.Pattern, sim.Population())
	if config.Mode == utils.ModeManual {
		fmt.Println("Press Enter to advance a generation, Ctrl+D to exit")
	} else {
		fmt.Println("Press Ctrl+C to exit")
	}
	if config.Renderer == utils.RendererScreen {
		fmt.Println("On screen: r restarts, q or Esc quits")
	}
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// statusReporter returns the per-frame hook that tracks stats and prints the status line
func statusReporter(config utils.Config, stats *utils.Stats, out io.Writer) func(*model.Simulation) error {
	lastFrameTime := time.Now()

	return func(sim *model.Simulation) error {
		frameStart := time.Now()
		livingCells, density, status := updateGameState(sim, lastFrameTime, stats)
		lastFrameTime = frameStart

		if !config.ShowStatus {
			return nil
		}
		return displayGameStatus(out, sim.Generation(), livingCells, density, status, stats)
	}
}

// updateGameState updates the stats and returns status information
func updateGameState(
	sim *model.Simulation,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string) {
	grid := sim.Grid()
	livingCells := sim.Population()
	density := float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	// Update performance stats
	stats.Update(sim.Generation(), livingCells, time.Since(lastFrameTime))

	// Update history for stagnation detection
	sim.UpdateHistory()

	status := "Active"
	if sim.IsStagnant() {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status
}

// displayGameStatus shows the current game status
func displayGameStatus(
	out io.Writer,
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
) error {
	_, err := fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n"+
		"Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		generation, livingCells, density, status,
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	return errors.Wrap(err, "[displayGameStatus] failed to write status")
}
