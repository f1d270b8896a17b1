package ui

import (
	"fmt"
	"slices"
)

var _ Component = (*Container)(nil)

// Layout defines how Components are arranged within a Container.
type Layout interface {
	// CalculatePosition returns the outer rectangle of the child at index.
	// The child applies its own margin and padding afterwards.
	CalculatePosition(c *Container, index int, child Style) (Position, error)
}

// Container is a Component holding an ordered list of children placed by a
// Layout. The container owns its children; a child only keeps a link back.
type Container struct {
	Base
	components []Component
	layout     Layout
}

// NewContainer creates a container below parent using layout.
func NewContainer(parent *Container, layout Layout, style Style) *Container {
	c := &Container{layout: layout}
	c.attach(c, parent, style)
	return c
}

// Children returns the children in insertion order.
func (c *Container) Children() []Component {
	return c.components
}

// Layout returns the layout policy.
func (c *Container) Layout() Layout {
	return c.layout
}

// CalculatePosition places the child at index using the container's layout.
func (c *Container) CalculatePosition(index int, child Style) (Position, error) {
	if c.layout == nil {
		return Position{}, ErrNoLayout
	}
	return c.layout.CalculatePosition(c, index, child)
}

// Draw renders the container frame. The root is never drawn.
func (c *Container) Draw(out FrontendOut) {
	if c.parent == nil {
		return
	}
	pos, err := c.Position()
	if err != nil {
		c.logger(FacilityContainer).Warn("skip draw", OpKey, "Draw", "err", err)
		return
	}
	out.Draw(pos, c.style, "")
}

// add appends child. Sibling indices are unchanged, but the container's own
// subtree is invalidated so the new child gets a place on the next pass.
func (c *Container) add(child Component) {
	c.components = append(c.components, child)
	c.InvalidatePosition()
	c.logger(FacilityContainer).Debug("child added", OpKey, "add", "size", len(c.components))
}

// Remove detaches child from the container. Later siblings move up one
// index, so the whole subtree is invalidated.
func (c *Container) Remove(child Component) error {
	for i, comp := range c.components {
		if comp.base() != child.base() {
			continue
		}
		c.components = slices.Delete(c.components, i, i+1)
		if ctx := child.Context(); ctx != nil && holdsFocus(child, ctx.focus) {
			ctx.setFocus(nil)
		}
		child.InvalidatePosition()
		child.base().parent = nil
		TraverseInclusive(child, func(n Component) TraverseCondition {
			n.base().ctx = nil
			return NotMatch
		}, nil)
		c.InvalidatePosition()
		c.logger(FacilityContainer).Debug("child removed", OpKey, "Remove", "size", len(c.components))
		return nil
	}
	return fmt.Errorf("remove: %w", ErrNotChild)
}

// holdsFocus reports whether focus is c or one of its descendants.
func holdsFocus(c Component, focus Focusable) bool {
	if focus == nil {
		return false
	}
	return !TraverseInclusive(c, func(n Component) TraverseCondition {
		if f, ok := n.(Focusable); ok && f == focus {
			return NotMatchBreak
		}
		return NotMatch
	}, nil)
}
