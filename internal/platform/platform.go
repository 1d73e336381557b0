package platform

import "uidriver/internal/uia"

// WindowInfo pairs a visible top-level window's title with its live root
// element.
type WindowInfo struct {
	Title string
	Root  uia.Element
}

// Desktop reads the OS-level window and element structure.
type Desktop interface {
	// Windows returns the visible top-level windows, in z-order.
	Windows() ([]WindowInfo, error)

	// Root returns the platform-wide element tree root (the desktop), used
	// as the widest search scope when a control renders outside its
	// expected window hierarchy.
	Root() (uia.Element, error)

	// FocusedElement returns the element that currently holds keyboard
	// focus, or nil if none can be determined.
	FocusedElement() (uia.Element, error)
}

// Inputter simulates pointer input. The cursor is an OS-global resource:
// callers save and restore its position around simulated clicks.
type Inputter interface {
	CursorPos() (x, y int, err error)
	MoveMouse(x, y int) error
	Click(x, y int, count int) error
}
