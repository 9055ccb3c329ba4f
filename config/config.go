// Package config loads game settings from toml or yaml files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/input"
)

type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Player  PlayerConfig  `toml:"player" yaml:"player"`
	Input   InputConfig   `toml:"input" yaml:"input"`
	Control ControlConfig `toml:"control" yaml:"control"`
	Sim     SimConfig     `toml:"sim" yaml:"sim"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Debug   DebugConfig   `toml:"debug" yaml:"debug"`
}

type WindowConfig struct {
	Title      string   `toml:"title" yaml:"title"`
	Width      int      `toml:"width" yaml:"width"`
	Height     int      `toml:"height" yaml:"height"`
	Background [4]uint8 `toml:"background" yaml:"background"` // RGBA
}

type PlayerConfig struct {
	Width  float64  `toml:"width" yaml:"width"`
	Height float64  `toml:"height" yaml:"height"`
	Color  [4]uint8 `toml:"color" yaml:"color"`
	Glyph  string   `toml:"glyph" yaml:"glyph"` // terminal frontend only
}

type InputConfig struct {
	TextRepeat time.Duration `toml:"text_repeat" yaml:"text_repeat"`
	// Bindings maps a command name to a trigger such as "ctrl+q" or "char:r".
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`
}

type ControlConfig struct {
	AccelerationRate float64 `toml:"acceleration_rate" yaml:"acceleration_rate"`
}

type SimConfig struct {
	TPS      int           `toml:"tps" yaml:"tps"`
	Parallel bool          `toml:"parallel" yaml:"parallel"`
	MaxDelta time.Duration `toml:"max_delta" yaml:"max_delta"` // 0 disables clamping
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type DebugConfig struct {
	ImGui bool `toml:"imgui" yaml:"imgui"`
}

// Load reads the file at path over Defaults. The format is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Game",
			Width:      1200,
			Height:     800,
			Background: [4]uint8{204, 204, 204, 255},
		},
		Player: PlayerConfig{
			Width:  50,
			Height: 50,
			Color:  [4]uint8{200, 40, 40, 255},
			Glyph:  "@",
		},
		Input: InputConfig{
			TextRepeat: input.DefaultTextRepeat,
			Bindings: map[string]string{
				"quit":  "Escape",
				"reset": "char:r",
			},
		},
		Control: ControlConfig{
			AccelerationRate: controller.AccelerationRate,
		},
		Sim: SimConfig{
			TPS:      60,
			MaxDelta: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("player size must be positive, got %gx%g", c.Player.Width, c.Player.Height))
	}
	if len([]rune(c.Player.Glyph)) > 1 {
		errs = multierr.Append(errs, fmt.Errorf("player glyph must be a single character, got %q", c.Player.Glyph))
	}
	if c.Input.TextRepeat <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("input.text_repeat must be positive, got %s", c.Input.TextRepeat))
	}
	for name, trigger := range c.Input.Bindings {
		if name == "" {
			errs = multierr.Append(errs, errors.New("input.bindings: empty command name"))
			continue
		}
		if _, err := input.ParseTrigger(trigger); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("input.bindings.%s: %w", name, err))
		}
	}
	if c.Control.AccelerationRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("control.acceleration_rate must be positive, got %g", c.Control.AccelerationRate))
	}
	if c.Sim.TPS <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("sim.tps must be positive, got %d", c.Sim.TPS))
	}
	if c.Sim.MaxDelta < 0 {
		errs = multierr.Append(errs, fmt.Errorf("sim.max_delta must not be negative, got %s", c.Sim.MaxDelta))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errs
}

// TickInterval is the simulation step implied by Sim.TPS.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Sim.TPS)
}

// PlayerGlyph returns the first rune of Player.Glyph, or zero when unset.
func (c *Config) PlayerGlyph() rune {
	for _, r := range c.Player.Glyph {
		return r
	}
	return 0
}
