// Command spox shows a small component tree on one of the drawing
// backends: a terminal, an ebiten window or a devdraw window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/OpticalFlyer/spox/frontend/drawout"
	"github.com/OpticalFlyer/spox/frontend/ebitenout"
	"github.com/OpticalFlyer/spox/frontend/termout"
	"github.com/OpticalFlyer/spox/internal/config"
	"github.com/OpticalFlyer/spox/ui"
)

var errNoTerminal = errors.New("spox: the terminal frontend needs a terminal on stdout")

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, overlay, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, overlay); err != nil {
		logger.Error("exit", ui.OpKey, "main", "err", err)
		closeLog()
		log.Fatal(err)
	}
}

// loadConfig reads the config file named by -config and applies the
// command line overrides. With -dump-config the result is written to out
// and flag.ErrHelp returned.
func loadConfig(args []string, out io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("spox", flag.ContinueOnError)
	path := fs.String("config", "", "TOML config file")
	frontend := fs.String("frontend", "", "backend: terminal, window or draw")
	width := fs.Int("width", 0, "window width in pixels")
	height := fs.Int("height", 0, "window height in pixels")
	level := fs.String("log-level", "", "log level: debug, info, warn or error")
	logFile := fs.String("log-file", "", "file receiving all log records")
	dump := fs.Bool("dump-config", false, "print the effective config and exit")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return config.Config{}, err
		}
	}
	if *frontend != "" {
		cfg.Frontend = *frontend
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if *dump {
		if err := cfg.Write(out); err != nil {
			return config.Config{}, err
		}
		return cfg, flag.ErrHelp
	}
	return cfg, nil
}

// newLogger builds the program logger. Records go to the log file or to
// stderr, and the newest ones are kept for the on-screen overlay. The
// terminal backend owns stderr's terminal, so without a log file it only
// keeps the overlay.
func newLogger(cfg config.Config) (*slog.Logger, *ui.RingHandler, func(), error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, nil, err
	}
	closeLog := func() {}

	var next slog.Handler
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, err
		}
		closeLog = func() { f.Close() }
		next = slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	case cfg.Frontend != config.FrontendTerminal:
		next = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	if cfg.Log.Overlay == 0 {
		if next == nil {
			next = slog.DiscardHandler
		}
		return slog.New(next), nil, closeLog, nil
	}
	ring := ui.NewRingHandler(cfg.Log.Overlay, level, next)
	return slog.New(ring), ring, closeLog, nil
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, overlay *ui.RingHandler) error {
	opts := []ui.Option{ui.WithLogger(logger)}
	if overlay != nil {
		opts = append(opts, ui.WithLogOverlay(overlay))
	}
	uictx := ui.NewContext(opts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app := newApp(uictx, cfg, logger, cancel)

	quitKey := func(ev ui.Event) bool {
		k, ok := ev.(ui.KeyEvent)
		return ok && (k.Key == ui.KeyEscape || (k.Key == ui.KeyRune && k.Rune == 'q'))
	}

	var err error
	switch cfg.Frontend {
	case config.FrontendTerminal:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errNoTerminal
		}
		var tty *termout.Terminal
		if tty, err = termout.New(logger); err != nil {
			return err
		}
		defer tty.Close()
		app.attach(tty)
		err = uictx.Run(ctx, tty, quitKey)

	case config.FrontendWindow:
		w := ebitenout.New(uictx, ebitenout.Options{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Title:  cfg.Window.Title,
			TPS:    cfg.Window.TPS,
		}, quitKey, logger)
		app.attach(w.Surface())
		err = w.Run(ctx)

	case config.FrontendDraw:
		var d *drawout.Display
		winsize := fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height)
		if d, err = drawout.Open(cfg.Window.Font, cfg.Window.Title, winsize, logger); err != nil {
			return err
		}
		defer d.Close()
		app.attach(d)
		err = uictx.Run(ctx, d, quitKey)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
