package main

import (
	"bytes"
	"errors"
	"flag"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpticalFlyer/spox/internal/config"
	"github.com/OpticalFlyer/spox/ui"
)

func TestLoadConfigFlags(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "spox.log")
	got, err := loadConfig([]string{
		"-frontend", "terminal",
		"-width", "1024",
		"-log-level", "debug",
		"-log-file", logFile,
	}, nil)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	want := config.Default()
	want.Frontend = config.FrontendTerminal
	want.Window.Width = 1024
	want.Log.Level = "debug"
	want.Log.File = logFile
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig([]string{"-frontend", "gtk"}, nil); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("bad frontend error = %v; want ErrInvalid", err)
	}

	var out bytes.Buffer
	_, err := loadConfig([]string{"-dump-config"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-dump-config error = %v; want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), `frontend = "window"`) {
		t.Errorf("dumped config = %q; want the frontend setting", out.String())
	}
}

func TestNewLoggerTerminalKeepsOverlay(t *testing.T) {
	cfg := config.Default()
	cfg.Frontend = config.FrontendTerminal
	logger, overlay, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() error: %v", err)
	}
	defer closeLog()

	if overlay == nil {
		t.Fatal("no overlay handler")
	}
	logger.Info("visible")
	logger.Debug("below level")
	lines := overlay.Lines()
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "visible") {
		t.Errorf("overlay lines = %q; want only the info record", lines)
	}

	cfg.Log.Overlay = 0
	if _, overlay, _, _ = newLogger(cfg); overlay != nil {
		t.Error("overlay created with overlay = 0")
	}
}

type fakeOut struct {
	w, h  int
	texts []string
}

func (f *fakeOut) ScreenDimension() (int, int) { return f.w, f.h }
func (f *fakeOut) FontDimension() (int, int)   { return 1, 1 }
func (f *fakeOut) DrawFinish()                 {}
func (f *fakeOut) Draw(_ ui.Position, _ ui.Style, text string) {
	if text != "" {
		f.texts = append(f.texts, text)
	}
}

func TestAppButtons(t *testing.T) {
	cfg := config.Default()
	cfg.Frontend = config.FrontendTerminal
	uictx := ui.NewContext()
	quit := 0
	a := newApp(uictx, cfg, slog.New(slog.DiscardHandler), func() { quit++ })
	out := &fakeOut{w: 80, h: 24}
	a.attach(out)

	buttons := ui.ComponentsOf[*ui.Button](uictx.Root())
	if len(buttons) != 3 {
		t.Fatalf("got %d buttons; want 3", len(buttons))
	}
	helloButton, clearButton, quitButton := buttons[0], buttons[1], buttons[2]

	helloButton.Activate()
	helloButton.Activate()
	if got := len(a.history.Children()); got != 3 {
		t.Errorf("history has %d entries after two hellos; want 3", got)
	}
	if a.status.Label != "said hello 2 times" {
		t.Errorf("status = %q", a.status.Label)
	}

	clearButton.Activate()
	if got := len(a.history.Children()); got != 1 {
		t.Errorf("history has %d entries after clear; want 1", got)
	}

	// Keyboard path: focus the quit button and press enter.
	for i := 0; i < 3; i++ {
		uictx.Dispatch(ui.KeyEvent{Key: ui.KeyTab})
	}
	if uictx.Focused() != ui.Focusable(quitButton) {
		t.Fatal("three tabs did not reach the quit button")
	}
	uictx.Dispatch(ui.KeyEvent{Key: ui.KeyEnter})
	if quit != 1 {
		t.Errorf("quit called %d times; want 1", quit)
	}

	if err := uictx.Draw(); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if !slices.Contains(out.texts, "> Quit") || !slices.Contains(out.texts, "cleared") {
		t.Errorf("drawn texts = %q", out.texts)
	}
}
