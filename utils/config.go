package utils

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-torus/model"
)

// Advance modes
const (
	ModeAuto   = "auto"
	ModeManual = "manual"
)

// Renderer kinds
const (
	RendererText   = "text"
	RendererDebug  = "debug"
	RendererScreen = "screen"
)

// ErrInvalidConfig is returned by Validate for settings other than the grid size
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the game
type Config struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	FrameRate      time.Duration `json:"frame_rate"`
	Mode           string        `json:"mode"`
	Renderer       string        `json:"renderer"`
	AliveGlyph     string        `json:"alive_glyph"`
	DeadGlyph      string        `json:"dead_glyph"`
	Pattern        string        `json:"pattern"`
	PatternOffsetX int           `json:"pattern_offset_x"`
	PatternOffsetY int           `json:"pattern_offset_y"`
	MaxGenerations int           `json:"max_generations"`
	ShowStatus     bool          `json:"show_status"`
}

// DefaultConfig returns the settings of the classic 70x30 spaceship demo
func DefaultConfig() Config {
	return Config{
		Width:          70,
		Height:         30,
		FrameRate:      30 * time.Millisecond,
		Mode:           ModeAuto,
		Renderer:       RendererText,
		AliveGlyph:     "■ ",
		DeadGlyph:      "  ",
		Pattern:        model.Spaceship119P4H1V0.Name,
		MaxGenerations: 0, // run until interrupted
		ShowStatus:     true,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// BindFlags registers command-line overrides for every setting on fs,
// using the current values as defaults
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.DurationVar(&c.FrameRate, "delay", c.FrameRate, "delay between generations in auto mode")
	fs.StringVar(&c.Mode, "mode", c.Mode, "advance mode: auto or manual")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "renderer: text, debug or screen")
	fs.StringVar(&c.AliveGlyph, "alive", c.AliveGlyph, "glyph for live cells")
	fs.StringVar(&c.DeadGlyph, "dead", c.DeadGlyph, "glyph for dead cells")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern: "+strings.Join(model.PatternNames(), ", "))
	fs.IntVar(&c.PatternOffsetX, "offset-x", c.PatternOffsetX, "horizontal shift of the initial pattern")
	fs.IntVar(&c.PatternOffsetY, "offset-y", c.PatternOffsetY, "vertical shift of the initial pattern")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.BoolVar(&c.ShowStatus, "status", c.ShowStatus, "print a status line under each frame")
}

// OverrideFrom copies onto c every flag that was explicitly set on fs. fs must
// have been bound with BindFlags on some Config and already parsed.
func (c *Config) OverrideFrom(fs *flag.FlagSet) error {
	target := flag.NewFlagSet("override", flag.ContinueOnError)
	c.BindFlags(target)

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || target.Lookup(f.Name) == nil {
			return
		}
		if setErr := target.Set(f.Name, f.Value.String()); setErr != nil {
			err = errors.Wrapf(setErr, "[OverrideFrom] flag -%s", f.Name)
		}
	})
	return err
}

// Validate rejects settings the simulation cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(model.ErrInvalidDimensions, "[Validate] %dx%d", c.Width, c.Height)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame rate %v", c.FrameRate)
	}
	switch c.Mode {
	case ModeAuto, ModeManual:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown mode %q", c.Mode)
	}
	switch c.Renderer {
	case RendererText, RendererDebug, RendererScreen:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown renderer %q", c.Renderer)
	}
	if c.MaxGenerations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max generations %d", c.MaxGenerations)
	}
	if _, err := model.PatternByName(c.Pattern); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	return nil
}
