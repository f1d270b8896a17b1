package ui

import "image"

// Position is the resolved layout of a Component.
// X, Y, W and H are the outer rectangle on the target surface; TextX and
// TextY are the origin where the component's content is drawn.
type Position struct {
	X, Y  int
	W, H  int
	TextX int
	TextY int
}

// Rect returns the outer rectangle as an image.Rectangle.
func (p Position) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// Contains reports whether the point lies inside the outer rectangle.
func (p Position) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.W &&
		y >= p.Y && y < p.Y+p.H
}

// Style is the per-component spacing configuration.
type Style struct {
	Margin  int
	Padding int
}

// NewStyle returns a Style with negative values clamped to zero.
func NewStyle(margin, padding int) Style {
	return Style{
		Margin:  max(0, margin),
		Padding: max(0, padding),
	}
}

// space is the distance from a container's edge to its content.
func (s Style) space() int {
	return s.Margin + s.Padding
}

// inset shrinks an outer rectangle handed out by a parent layout by the
// component's own margin and places the content origin inside its padding.
// A side that is too small to hold the padding keeps its origin at the edge.
func (s Style) inset(p Position) Position {
	p.W = max(1, p.W-2*s.Margin)
	p.H = max(1, p.H-2*s.Margin)

	if p.W > 2*s.space() {
		p.X += s.Margin
		p.TextX = p.X + s.Padding
	} else {
		p.TextX = p.X
	}

	if p.H > 2*s.space() {
		p.Y += s.Margin
		p.TextY = p.Y + s.Padding
	} else {
		p.TextY = p.Y
	}
	return p
}
