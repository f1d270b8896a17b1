package ui

var (
	_ Component = (*Button)(nil)
	_ Clickable = (*Button)(nil)
	_ Focusable = (*Button)(nil)
)

// Clickable is implemented by components reacting to pointer input.
type Clickable interface {
	Component
	// HandleInput receives every pointer event and reports whether the
	// point is inside the component.
	HandleInput(x, y int, pressed bool) bool
}

// Focusable is implemented by components that can take keyboard focus.
type Focusable interface {
	Component
	SetFocus(focused bool)
	Focused() bool
	// Activate triggers the component from the keyboard.
	Activate()
}

// focusMarker is drawn in front of the label of the focused button.
const focusMarker = "> "

type Button struct {
	Widget
	onClick func()

	// State
	isPressed bool
	isFocused bool
}

// NewButton creates a button below parent calling onClick when clicked.
func NewButton(parent *Container, style Style, text string, onClick func()) *Button {
	b := &Button{
		Widget:  Widget{Label: text},
		onClick: onClick,
	}
	b.attach(b, parent, style)
	return b
}

func (b *Button) Draw(out FrontendOut) {
	text := b.Label
	if b.isFocused {
		text = focusMarker + text
	}
	b.drawText(out, text)
}

// HandleInput fires the click when the button is released over the
// button after being pressed on it.
func (b *Button) HandleInput(x, y int, pressed bool) bool {
	pos, err := b.Position()
	if err != nil || !pos.Contains(x, y) {
		b.isPressed = false
		return false
	}

	if pressed {
		b.isPressed = true
	} else if b.isPressed {
		b.isPressed = false
		b.Activate()
	}
	return true
}

// Pressed reports whether the pointer is held down on the button.
func (b *Button) Pressed() bool {
	return b.isPressed
}

func (b *Button) SetFocus(focused bool) {
	b.isFocused = focused
}

func (b *Button) Focused() bool {
	return b.isFocused
}

func (b *Button) Activate() {
	b.logger(FacilityWidget).Debug("click", OpKey, "Activate", "label", b.Label)
	if b.onClick != nil {
		b.onClick()
	}
}
