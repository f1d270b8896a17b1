// Package ebitenout draws a component tree in an ebiten window and feeds
// the window's keyboard, mouse and touch input back to it.
package ebitenout

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/spox/ui"
)

const facility = "SDL_OUT"

// Glyph cell of the ebitenutil debug font.
const (
	FontWidth  = 6
	FontHeight = 16
)

var (
	backgroundColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	frameColor      = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

var (
	_ ui.FrontendOut = (*Surface)(nil)
	_ ebiten.Game    = (*Window)(nil)
)

// Options configure the window.
type Options struct {
	Width, Height int
	Title         string
	// TPS is the update rate; zero keeps ebiten's default.
	TPS int
}

// Window implements ebiten.Game around a ui.Context.
type Window struct {
	ui      *ui.Context
	onEvent ui.EventHandler
	done    <-chan struct{}
	logger  *slog.Logger
	opts    Options

	surface   *Surface
	debugMode bool

	chars    []rune
	touchIDs []ebiten.TouchID
	touches  map[ebiten.TouchID]image.Point
}

// New creates a window for ctx. onEvent sees every event before it is
// dispatched and may stop the game by returning true.
func New(ctx *ui.Context, opts Options, onEvent ui.EventHandler, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(ui.FacilityKey, facility)
	return &Window{
		ui:      ctx,
		onEvent: onEvent,
		logger:  logger,
		opts:    opts,
		surface: &Surface{
			width:  max(1, opts.Width),
			height: max(1, opts.Height),
			labels: newCache(renderLabel, (*ebiten.Image).Deallocate),
			logger: logger,
		},
	}
}

// Surface returns the backend to attach to the context.
func (w *Window) Surface() *Surface {
	return w.surface
}

// renderLabel prints text once into its own image.
func renderLabel(text string) *ebiten.Image {
	img := ebiten.NewImage(max(1, len([]rune(text))*FontWidth), FontHeight)
	ebitenutil.DebugPrint(img, text)
	return img
}

// Run opens the window and blocks until it is closed, the game stops or
// ctx is done.
func (w *Window) Run(ctx context.Context) error {
	w.done = ctx.Done()
	ebiten.SetWindowSize(w.surface.width, w.surface.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetVsyncEnabled(true)
	if w.opts.TPS > 0 {
		ebiten.SetTPS(w.opts.TPS)
	}

	w.logger.Info("starting game", ui.OpKey, "Run", "w", w.surface.width, "h", w.surface.height)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.debugMode = !w.debugMode
	}
	if w.dispatch(w.pollInput()) {
		return ebiten.Termination
	}
	return nil
}

// dispatch hands events to the handler and the context and reports
// whether one of them asked to stop.
func (w *Window) dispatch(events []ui.Event) bool {
	for _, ev := range events {
		if w.onEvent != nil && w.onEvent(ev) {
			return true
		}
		if w.ui.Dispatch(ev) {
			return true
		}
	}
	return false
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w.surface.screen = screen
	if err := w.ui.Draw(); err != nil {
		w.logger.Warn("frame skipped", ui.OpKey, "Draw", "err", err)
	}
	w.surface.screen = nil

	if w.debugMode {
		debugText := fmt.Sprintf("TPS: %0.2f\nFPS: %0.2f\nLabels: %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), w.surface.labels.len())
		ebitenutil.DebugPrintAt(screen, debugText, max(0, w.surface.width-16*FontWidth), 0)
	}
}

// Layout follows the window size and reports changes as resize events.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	outsideWidth, outsideHeight = max(1, outsideWidth), max(1, outsideHeight)
	if outsideWidth != w.surface.width || outsideHeight != w.surface.height {
		w.surface.width, w.surface.height = outsideWidth, outsideHeight
		w.ui.Dispatch(ui.ResizeEvent{W: outsideWidth, H: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

// Surface is the drawing side of the window. Drawing happens only while
// the window renders a frame.
type Surface struct {
	width, height int

	// Target of the frame being drawn, nil outside Window.Draw.
	screen *ebiten.Image
	labels *cache[*ebiten.Image]
	logger *slog.Logger
}

func (s *Surface) ScreenDimension() (int, int) {
	return s.width, s.height
}

func (s *Surface) FontDimension() (int, int) {
	return FontWidth, FontHeight
}

// Draw strokes the outline of boxes with a margin or padding and prints
// text at the content origin, clipped to the box.
func (s *Surface) Draw(pos ui.Position, style ui.Style, text string) {
	if s.screen == nil {
		return
	}
	if style.Margin+style.Padding > 0 {
		vector.StrokeRect(s.screen,
			float32(pos.X)+0.5, float32(pos.Y)+0.5,
			float32(pos.W)-1, float32(pos.H)-1,
			1, frameColor, false)
	}
	if text == "" {
		return
	}

	dst, ok := s.screen.SubImage(pos.Rect()).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(pos.TextX), float64(pos.TextY))
	dst.DrawImage(s.labels.get(text), op)
}

// DrawFinish releases the labels the finished frame did not use.
func (s *Surface) DrawFinish() {
	if n := s.labels.sweep(); n > 0 {
		s.logger.Debug("labels evicted", ui.OpKey, "DrawFinish", "count", n)
	}
}
