package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/OpticalFlyer/spox/internal/config"
	"github.com/OpticalFlyer/spox/ui"
)

// Width of the menu column in font cells.
const menuColumns = 16

// app is the demo tree: a menu of buttons docked to the left and a list
// of labels filling the rest.
type app struct {
	ui     *ui.Context
	cfg    config.Config
	logger *slog.Logger
	quit   func()

	status  *ui.Widget
	history *ui.Container
	hellos  int
}

func newApp(uictx *ui.Context, cfg config.Config, logger *slog.Logger, quit func()) *app {
	return &app{
		ui:     uictx,
		cfg:    cfg,
		logger: logger.With(ui.FacilityKey, "APP"),
		quit:   quit,
	}
}

// attach builds the tree sized for out and attaches out to the context.
func (a *app) attach(out ui.FrontendOut) {
	boxes := a.cfg.Boxes()
	listStyle := ui.NewStyle(boxes.List.Margin, boxes.List.Padding)
	widgetStyle := ui.NewStyle(boxes.Widget.Margin, boxes.Widget.Padding)
	fw, _ := out.FontDimension()

	root := ui.NewRoot(a.ui, nil, ui.Style{})
	dock := ui.NewDock(root, ui.Style{}, menuColumns*fw, ui.DockLeft)

	menu := ui.NewList(dock, listStyle, boxes.List.Advance)
	ui.NewButton(menu, widgetStyle, "Hello", a.hello)
	ui.NewButton(menu, widgetStyle, "Clear", a.clear)
	ui.NewButton(menu, widgetStyle, "Quit", a.quit)

	a.history = ui.NewList(dock, listStyle, boxes.List.Advance)
	a.status = ui.NewWidget(a.history, widgetStyle, "spox on "+a.cfg.Frontend)

	a.ui.SetFrontendOut(out)
	a.logger.Info("tree ready", ui.OpKey, "attach",
		"components", len(ui.ComponentsOf[ui.Component](root)))
}

func (a *app) hello() {
	a.hellos++
	a.status.Label = fmt.Sprintf("said hello %d times", a.hellos)
	ui.NewWidget(a.history, a.status.Style(), fmt.Sprintf("hello #%d", a.hellos))
	a.logger.Info("hello", ui.OpKey, "hello", "count", a.hellos)
}

// clear removes every label but the status line.
func (a *app) clear() {
	for _, c := range slices.Clone(a.history.Children()) {
		if c == ui.Component(a.status) {
			continue
		}
		if err := a.history.Remove(c); err != nil {
			a.logger.Warn("remove failed", ui.OpKey, "clear", "err", err)
		}
	}
	a.hellos = 0
	a.status.Label = "cleared"
}
