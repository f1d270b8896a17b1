package ui

var _ Component = (*Widget)(nil)

// Widget is a leaf component showing a text label.
type Widget struct {
	Base
	Label string
}

// NewWidget creates a widget below parent.
func NewWidget(parent *Container, style Style, label string) *Widget {
	w := &Widget{Label: label}
	w.attach(w, parent, style)
	return w
}

// Children always returns nil; widgets have no children.
func (w *Widget) Children() []Component {
	return nil
}

func (w *Widget) Draw(out FrontendOut) {
	w.drawText(out, w.Label)
}

func (w *Widget) drawText(out FrontendOut, text string) {
	pos, err := w.Position()
	if err != nil {
		w.logger(FacilityWidget).Warn("skip draw", OpKey, "Draw", "err", err)
		return
	}
	out.Draw(pos, w.style, text)
}
