package ui

import "fmt"

var _ Layout = ListLayout{}

// ListLayout stacks children top to bottom. Every row is one font cell
// high plus the container's spacing, and Advance extra units apart.
type ListLayout struct {
	Advance int
}

// NewList creates a vertical list container below parent.
func NewList(parent *Container, style Style, advance int) *Container {
	return NewContainer(parent, ListLayout{Advance: advance}, style)
}

// NewRootList creates a vertical list as the root of ctx.
func NewRootList(ctx *Context, style Style, advance int) *Container {
	return NewRoot(ctx, ListLayout{Advance: advance}, style)
}

// CalculatePosition returns the outer rectangle of row index. It depends
// only on the container's own position and style, the font height and the
// index, never on the siblings.
func (l ListLayout) CalculatePosition(c *Container, index int, _ Style) (Position, error) {
	out, err := frontendOf(c)
	if err != nil {
		return Position{}, err
	}
	pos, err := c.Position()
	if err != nil {
		return Position{}, fmt.Errorf("list position: %w", err)
	}

	space := c.style.space()
	_, fontHeight := out.FontDimension()

	child := Position{
		W: max(1, pos.W-2*space),
		H: fontHeight + 2*space,
		X: pos.X + space,
	}
	child.Y = pos.Y + space + index*(child.H+l.Advance)
	child.TextX, child.TextY = child.X, child.Y

	c.logger(FacilityContainerList).Debug("row placed",
		OpKey, "CalculatePosition", "index", index,
		"x", child.X, "y", child.Y, "w", child.W, "h", child.H)
	return child, nil
}

// frontendOf returns the backend the container's tree is attached to.
func frontendOf(c *Container) (FrontendOut, error) {
	ctx := c.Context()
	if ctx == nil {
		return nil, ErrNoContext
	}
	out := ctx.FrontendOut()
	if out == nil {
		return nil, ErrNoFrontend
	}
	return out, nil
}
