package ui

import (
	"fmt"
	"log/slog"
)

// Component represents the basic building block of the UI system.
// Concrete components embed Base, which supplies everything except Draw
// and Children.
type Component interface {
	// Draw renders the component. It is called once per frame during the
	// tree walk.
	Draw(out FrontendOut)
	// Children returns the owned children in insertion order. The returned
	// slice must not be modified.
	Children() []Component

	Parent() *Container
	Context() *Context
	Style() Style
	Position() (Position, error)
	PositionValid() bool
	InvalidatePosition()
	PositionIndex() int

	base() *Base
}

// Base is the node state shared by every Component: the parent link, the
// style and the cached position.
type Base struct {
	self   Component
	parent *Container
	ctx    *Context
	style  Style

	// pos is nil until computed and after every invalidation.
	pos *Position
}

// attach wires the node into the tree below parent. A nil parent leaves
// the component detached.
func (b *Base) attach(self Component, parent *Container, style Style) {
	b.self = self
	b.style = NewStyle(style.Margin, style.Padding)
	b.pos = nil
	if parent == nil {
		return
	}
	b.parent = parent
	parent.add(self)
}

func (b *Base) base() *Base {
	return b
}

// Parent returns the owning container, or nil for the root.
func (b *Base) Parent() *Container {
	return b.parent
}

// Style returns the spacing configuration.
func (b *Base) Style() Style {
	return b.style
}

// Context returns the context the tree is attached to. The lookup walks up
// to the root once and is cached.
func (b *Base) Context() *Context {
	if b.ctx != nil {
		return b.ctx
	}
	if b.parent == nil {
		return nil
	}
	b.ctx = b.parent.Context()
	return b.ctx
}

func (b *Base) logger(facility string) *slog.Logger {
	ctx := b.Context()
	if ctx == nil {
		return discardLogger
	}
	return ctx.log(facility)
}

// PositionValid reports whether the cached position is current.
func (b *Base) PositionValid() bool {
	return b.pos != nil
}

// PositionIndex returns the rank of the component among its siblings, or
// 0 for the root.
func (b *Base) PositionIndex() int {
	if b.parent == nil {
		return 0
	}
	for i, c := range b.parent.components {
		if c.base() == b {
			return i
		}
	}
	return 0
}

// Position returns the layout of the component, computing it on the first
// call after an invalidation. The root covers the whole render surface;
// every other component asks its parent's layout for an outer rectangle
// and then applies its own margin and padding.
func (b *Base) Position() (Position, error) {
	if b.pos != nil {
		return *b.pos, nil
	}

	ctx := b.Context()
	if ctx == nil {
		return Position{}, ErrNoContext
	}
	out := ctx.FrontendOut()
	if out == nil {
		return Position{}, ErrNoFrontend
	}

	var pos Position
	if b.parent == nil {
		w, h := out.ScreenDimension()
		pos = Position{W: max(1, w), H: max(1, h)}
	} else {
		index := b.PositionIndex()
		outer, err := b.parent.CalculatePosition(index, b.style)
		if err != nil {
			return Position{}, fmt.Errorf("position of child %d: %w", index, err)
		}
		pos = b.style.inset(outer)
	}
	b.pos = &pos

	b.logger(FacilityComponent).Debug("position resolved",
		OpKey, "Position",
		"x", pos.X, "y", pos.Y, "w", pos.W, "h", pos.H,
		"textX", pos.TextX, "textY", pos.TextY,
		"margin", b.style.Margin, "padding", b.style.Padding)
	return pos, nil
}

// InvalidatePosition drops the cached position of the component and of all
// its descendants. Ancestors are unaffected.
func (b *Base) InvalidatePosition() {
	if b.self == nil {
		b.pos = nil
		return
	}
	b.logger(FacilityComponent).Debug("invalidate", OpKey, "InvalidatePosition")
	TraverseInclusive(b.self, clearPosition, nil)
}

func clearPosition(c Component) TraverseCondition {
	c.base().pos = nil
	return NotMatch
}
