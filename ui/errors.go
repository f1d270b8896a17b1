package ui

import "errors"

var (
	// ErrNoContext is returned when a component is not connected to a Context.
	ErrNoContext = errors.New("ui: component has no context")

	// ErrNoFrontend is returned when layout needs a backend and none is attached.
	ErrNoFrontend = errors.New("ui: no frontend attached")

	// ErrNoLayout is returned by a container without a layout policy.
	ErrNoLayout = errors.New("ui: container has no layout")

	// ErrNotChild is returned when a component is not a child of the container.
	ErrNotChild = errors.New("ui: not a child of this container")

	// ErrNotFound is returned by a unique find that matched nothing.
	ErrNotFound = errors.New("ui: no matching component")

	// ErrAmbiguous is returned by a unique find that matched more than one component.
	ErrAmbiguous = errors.New("ui: more than one matching component")
)
