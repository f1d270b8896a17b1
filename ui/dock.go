package ui

import "fmt"

var _ Layout = DockLayout{}

// DockSide is the edge a docked child sticks to.
type DockSide int

const (
	DockFill DockSide = iota
	DockLeft
	DockRight
	DockTop
	DockBottom
)

// DockLayout docks children to the edges of the container's padded area.
// Child i uses Sides[i]; children without an entry fill what is left.
// Each docked child takes Size units off its edge, so later children only
// see the area earlier ones did not claim. A fill child claims nothing.
type DockLayout struct {
	Sides []DockSide
	Size  int
}

// NewDock creates a dock container below parent.
func NewDock(parent *Container, style Style, size int, sides ...DockSide) *Container {
	return NewContainer(parent, DockLayout{Sides: sides, Size: size}, style)
}

func (l DockLayout) side(index int) DockSide {
	if index < len(l.Sides) {
		return l.Sides[index]
	}
	return DockFill
}

func (l DockLayout) CalculatePosition(c *Container, index int, _ Style) (Position, error) {
	pos, err := c.Position()
	if err != nil {
		return Position{}, fmt.Errorf("dock position: %w", err)
	}
	space := c.style.space()
	area := Position{
		X: pos.X + space,
		Y: pos.Y + space,
		W: max(1, pos.W-2*space),
		H: max(1, pos.H-2*space),
	}

	for i := 0; ; i++ {
		child, rest := l.dock(area, l.side(i))
		if i == index {
			child.TextX, child.TextY = child.X, child.Y
			return child, nil
		}
		area = rest
	}
}

// dock splits area into the rectangle for a child docked to side and the
// area that remains for later children.
func (l DockLayout) dock(area Position, side DockSide) (child, rest Position) {
	child, rest = area, area
	switch side {
	case DockLeft:
		child.W = clampSize(l.Size, area.W)
		rest.W = max(1, area.W-child.W)
		rest.X = area.X + area.W - rest.W
	case DockRight:
		child.W = clampSize(l.Size, area.W)
		child.X = area.X + area.W - child.W
		rest.W = max(1, area.W-child.W)
	case DockTop:
		child.H = clampSize(l.Size, area.H)
		rest.H = max(1, area.H-child.H)
		rest.Y = area.Y + area.H - rest.H
	case DockBottom:
		child.H = clampSize(l.Size, area.H)
		child.Y = area.Y + area.H - child.H
		rest.H = max(1, area.H-child.H)
	}
	return child, rest
}

func clampSize(size, available int) int {
	return max(1, min(size, available))
}
