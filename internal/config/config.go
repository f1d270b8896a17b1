// Package config loads the settings of the spox program from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Frontends that can be selected.
const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
	FrontendDraw     = "draw"
)

var frontends = []string{FrontendTerminal, FrontendWindow, FrontendDraw}

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds every setting of the program.
type Config struct {
	Frontend string `toml:"frontend"`
	Window   Window `toml:"window"`
	List     Box    `toml:"list"`
	Widget   Box    `toml:"widget"`
	// Terminal replaces List and Widget on the terminal frontend, where
	// the unit is a character cell instead of a pixel.
	Terminal Boxes `toml:"terminal"`
	Log      Log   `toml:"log"`
}

type Boxes struct {
	List   Box `toml:"list"`
	Widget Box `toml:"widget"`
}

// Window sizes the window backends. The terminal backend uses the size of
// the terminal instead.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
	Font   string `toml:"font"`
}

// Box is the style of a component. Advance only applies to lists.
type Box struct {
	Margin  int `toml:"margin"`
	Padding int `toml:"padding"`
	Advance int `toml:"advance"`
}

type Log struct {
	Level string `toml:"level"`
	// File receives every record; empty means stderr, except for the
	// terminal frontend where records are only kept for the overlay.
	File string `toml:"file"`
	// Overlay is the number of records drawn on screen, 0 to disable.
	Overlay int `toml:"overlay"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Frontend: FrontendWindow,
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "spox",
		},
		List:   Box{Margin: 4, Padding: 7},
		Widget: Box{Margin: 2, Padding: 5},
		Terminal: Boxes{
			List:   Box{Padding: 1},
			Widget: Box{Padding: 1},
		},
		Log: Log{
			Level:   "info",
			Overlay: 5,
		},
	}
}

// Load reads path over the defaults. Keys the program does not know are
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks every setting.
func (c Config) Validate() error {
	if !slices.Contains(frontends, c.Frontend) {
		return fmt.Errorf("%w: frontend %q, want one of %s", ErrInvalid, c.Frontend, strings.Join(frontends, ", "))
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	}
	boxes := map[string]Box{
		"list":            c.List,
		"widget":          c.Widget,
		"terminal.list":   c.Terminal.List,
		"terminal.widget": c.Terminal.Widget,
	}
	for name, b := range boxes {
		if b.Margin < 0 || b.Padding < 0 || b.Advance < 0 {
			return fmt.Errorf("%w: %s margin %d padding %d advance %d", ErrInvalid, name, b.Margin, b.Padding, b.Advance)
		}
	}
	if c.Log.Overlay < 0 {
		return fmt.Errorf("%w: log overlay %d", ErrInvalid, c.Log.Overlay)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Boxes returns the list and widget styles for the selected frontend.
func (c Config) Boxes() Boxes {
	if c.Frontend == FrontendTerminal {
		return c.Terminal
	}
	return Boxes{List: c.List, Widget: c.Widget}
}

// SlogLevel parses Level, e.g. "debug" or "warn+2".
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
