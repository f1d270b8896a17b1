package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Context connects a component tree to a backend. It owns the root
// container and the logger, and turns input events into invalidation and
// redraws.
type Context struct {
	root    *Container
	out     FrontendOut
	logger  *slog.Logger
	loggers map[string]*slog.Logger
	overlay *RingHandler
	focus   Focusable
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used by the context and its components.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLogOverlay draws the lines retained by h at the bottom left of every
// frame.
func WithLogOverlay(h *RingHandler) Option {
	return func(c *Context) {
		c.overlay = h
	}
}

// NewContext creates a context with no root and no frontend.
func NewContext(opts ...Option) *Context {
	c := &Context{
		logger:  discardLogger,
		loggers: make(map[string]*slog.Logger),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log(FacilityContext).Debug("context created", OpKey, "NewContext")
	return c
}

// log returns the logger for a facility.
func (c *Context) log(facility string) *slog.Logger {
	l, ok := c.loggers[facility]
	if !ok {
		l = c.logger.With(FacilityKey, facility)
		c.loggers[facility] = l
	}
	return l
}

// Root returns the root container, or nil when none was created.
func (c *Context) Root() *Container {
	if c.root == nil {
		c.log(FacilityContext).Warn("no root container", OpKey, "Root")
	}
	return c.root
}

func (c *Context) setRoot(root *Container) {
	c.root = root
}

// FrontendOut returns the attached backend, or nil.
func (c *Context) FrontendOut() FrontendOut {
	if c.out == nil {
		c.log(FacilityContext).Warn("no frontendOut", OpKey, "FrontendOut")
	}
	return c.out
}

// SetFrontendOut attaches out, or detaches the current backend when out is
// nil. The whole tree is invalidated.
func (c *Context) SetFrontendOut(out FrontendOut) {
	c.out = out
	c.invalidateAll()
}

func (c *Context) invalidateAll() {
	if c.root != nil {
		c.root.InvalidatePosition()
	}
}

// EventResize handles a change of the surface size.
func (c *Context) EventResize(w, h int) {
	c.log(FacilityContext).Debug("resize", OpKey, "EventResize", "w", w, "h", h)
	c.invalidateAll()
}

// EventKey handles a key press. Tab moves the focus, Enter activates the
// focused component.
func (c *Context) EventKey(ev KeyEvent) {
	c.log(FacilityContext).Debug("key", OpKey, "EventKey", "key", ev.Key, "rune", string(ev.Rune))
	c.invalidateAll()
	switch ev.Key {
	case KeyTab, KeyDown:
		c.moveFocus(1)
	case KeyUp:
		c.moveFocus(-1)
	case KeyEnter:
		if c.focus != nil {
			c.focus.Activate()
		}
	}
}

// EventClick forwards a pointer event to every clickable component and
// focuses the one under the pointer.
func (c *Context) EventClick(x, y int, pressed bool) {
	c.log(FacilityContext).Debug("click", OpKey, "EventClick", "x", x, "y", y, "pressed", pressed)
	c.invalidateAll()
	if c.root == nil {
		return
	}

	hit, err := FindComponentInclusive(c.root, func(n Component) TraverseCondition {
		if _, ok := n.(Clickable); !ok {
			return NotMatch
		}
		pos, err := n.Position()
		if err != nil || !pos.Contains(x, y) {
			return NotMatch
		}
		return Match
	})
	if err == nil && pressed {
		if f, ok := hit.(Focusable); ok {
			c.setFocus(f)
		}
	}

	for _, cl := range ComponentsOf[Clickable](c.root) {
		cl.HandleInput(x, y, pressed)
	}
}

// Focused returns the component holding the keyboard focus.
func (c *Context) Focused() Focusable {
	return c.focus
}

func (c *Context) setFocus(f Focusable) {
	if c.focus != nil {
		c.focus.SetFocus(false)
	}
	c.focus = f
	if f != nil {
		f.SetFocus(true)
	}
}

func (c *Context) moveFocus(step int) {
	if c.root == nil {
		return
	}
	all := ComponentsOf[Focusable](c.root)
	if len(all) == 0 {
		return
	}
	next := 0
	for i, f := range all {
		if f == c.focus {
			next = (i + step + len(all)) % len(all)
			break
		}
	}
	c.setFocus(all[next])
}

// Dispatch routes ev to the matching handler. It reports whether ev asks
// the loop to stop.
func (c *Context) Dispatch(ev Event) bool {
	switch ev := ev.(type) {
	case KeyEvent:
		c.EventKey(ev)
	case ClickEvent:
		c.EventClick(ev.X, ev.Y, ev.Pressed)
	case ResizeEvent:
		c.EventResize(ev.W, ev.H)
	case QuitEvent:
		return true
	}
	return false
}

// Draw walks the tree in pre-order and draws every component, then the log
// overlay, and presents the frame. Without a frontend the frame is skipped.
func (c *Context) Draw() error {
	out := c.FrontendOut()
	if out == nil {
		return ErrNoFrontend
	}
	if c.root != nil {
		TraverseInclusive(c.root, func(n Component) TraverseCondition {
			n.Draw(out)
			return NotMatch
		}, nil)
	}
	c.drawOverlay(out)
	out.DrawFinish()
	return nil
}

// drawOverlay draws the retained log lines one font cell from the left and
// bottom edges, across half of the surface.
func (c *Context) drawOverlay(out FrontendOut) {
	if c.overlay == nil {
		return
	}
	lines := c.overlay.Lines()
	if len(lines) == 0 {
		return
	}
	fw, fh := out.FontDimension()
	sw, sh := out.ScreenDimension()
	pos := Position{
		X: fw,
		Y: sh - (1+len(lines))*fh,
		W: max(1, sw/2-2*fw),
		H: fh,
	}
	for _, line := range lines {
		pos.TextX, pos.TextY = pos.X, pos.Y
		out.Draw(pos, Style{}, line)
		pos.Y += fh
	}
}

// EventHandler sees every event before it is dispatched. Returning true
// stops the loop.
type EventHandler func(Event) bool

// Run is the application loop: it draws, then waits for events, dispatches
// them and redraws after each one. It returns nil when the handler or a
// QuitEvent stops the loop or the input is closed, and the context error
// when ctx is cancelled.
func (c *Context) Run(ctx context.Context, in FrontendIn, onEvent EventHandler) error {
	if in == nil {
		c.log(FacilityContext).Warn("no frontendIn", OpKey, "Run")
		return ErrNoFrontend
	}
	c.log(FacilityContext).Info("enter loop", OpKey, "Run")
	// A frame without a frontend is logged by Draw; events still flow.
	_ = c.Draw()
	for {
		ev, err := in.WaitEvent(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if onEvent != nil && onEvent(ev) {
			return nil
		}
		if c.Dispatch(ev) {
			return nil
		}
		_ = c.Draw()
	}
}
