package ui

import "fmt"

var _ Layout = FillLayout{}

// NewRoot creates the unparented container anchoring the tree of ctx and
// registers it as the context's root. Its position is the whole surface of
// the attached frontend. A nil layout defaults to FillLayout.
func NewRoot(ctx *Context, layout Layout, style Style) *Container {
	if layout == nil {
		layout = FillLayout{}
	}
	c := &Container{layout: layout}
	c.attach(c, nil, style)
	if ctx == nil {
		return c
	}
	c.ctx = ctx
	ctx.setRoot(c)
	return c
}

// FillLayout gives every child the container's whole padded area.
type FillLayout struct{}

func (FillLayout) CalculatePosition(c *Container, index int, _ Style) (Position, error) {
	pos, err := c.Position()
	if err != nil {
		return Position{}, fmt.Errorf("fill position: %w", err)
	}
	space := c.style.space()
	child := Position{
		X: pos.X + space,
		Y: pos.Y + space,
		W: max(1, pos.W-2*space),
		H: max(1, pos.H-2*space),
	}
	child.TextX, child.TextY = child.X, child.Y
	return child, nil
}
