package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-torus/driver"
	"github.com/sheikhrachel/go-torus/model"
	"github.com/sheikhrachel/go-torus/utils"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("go-torus: ")

	configPath := flag.String("config", "config.json", "path to a JSON configuration file")
	flagConfig := utils.DefaultConfig()
	flagConfig.BindFlags(flag.CommandLine)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Flags given on the command line win over the file
	if err = config.OverrideFrom(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	if err = config.Validate(); err != nil {
		log.Fatal(err)
	}

	sim, reseed, err := initializeGame(config)
	if err != nil {
		log.Fatal(err)
	}

	renderer, cleanup, err := newRenderer(config, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	var statusOut io.Writer = os.Stdout
	if _, ok := renderer.(*model.ScreenRenderer); ok {
		statusOut = io.Discard
	} else if config.ShowStatus {
		displayGameInfo(config, sim)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := utils.NewStats()
	d := &driver.Driver{
		Sim:            sim,
		Renderer:       renderer,
		Source:         newSource(config, renderer, os.Stdin),
		MaxGenerations: config.MaxGenerations,
		OnFrame:        statusReporter(config, stats, statusOut),
		Reseed:         reseed,
	}

	err = d.Run(ctx)
	cleanup()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		sim.Generation(), stats.Runtime().Seconds())
}
