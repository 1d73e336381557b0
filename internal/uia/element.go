// Package uia abstracts the live UI Automation tree of a target application.
// Controls are represented by the Element interface; the optional behaviors a
// control may support (invoke, toggle, value access, tabular access, ...) are
// exposed as named patterns queried at runtime, because any given control
// supports an open-ended subset of them.
package uia

// Pattern names, matching the capability spellings used by descriptor dumps.
const (
	PatternInvoke         = "InvokePattern"
	PatternToggle         = "TogglePattern"
	PatternSelectionItem  = "SelectionItemPattern"
	PatternValue          = "ValuePattern"
	PatternGrid           = "GridPattern"
	PatternTable          = "TablePattern"
	PatternText           = "TextPattern"
	PatternRangeValue     = "RangeValuePattern"
	PatternLegacy         = "LegacyIAccessiblePattern"
	PatternExpandCollapse = "ExpandCollapsePattern"
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether the rectangle has no area (off-screen or virtualized
// controls report zero-size bounds).
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Element is a live control in the target application's UI tree. Handles are
// never cached across operations: the tree is assumed to mutate between calls.
type Element interface {
	// Name returns the control's display name (UIA Name property).
	Name() string

	// AutomationID returns the control's structured identifier, or "".
	AutomationID() string

	// ControlType returns the control's type classification.
	ControlType() ControlType

	// IsEnabled reports whether the control accepts interaction.
	IsEnabled() bool

	// Bounds returns the control's screen bounding box.
	Bounds() Rect

	// Children returns the control's direct children, in tree order.
	Children() []Element

	// SetFocus moves keyboard focus to the control. Callers treat focus as
	// best-effort and must not let a focus failure abort the operation.
	SetFocus() error

	// Pattern returns the named capability object if the control supports
	// it. The returned value implements the pattern interface matching the
	// name (e.g. InvokePattern for PatternInvoke).
	Pattern(name string) (any, bool)
}

// InvokePattern activates a control (buttons, menu items).
type InvokePattern interface {
	Invoke() error
}

// TogglePattern flips and reads two-state controls (checkboxes, switches).
type TogglePattern interface {
	Toggle() error
	State() (bool, error)
}

// SelectionItemPattern selects an item within a selection container
// (tab items, list items).
type SelectionItemPattern interface {
	Select() error
	IsSelected() (bool, error)
}

// ValuePattern reads and writes a control's data value.
type ValuePattern interface {
	Value() (string, error)
	SetValue(string) error
	ReadOnly() (bool, error)
}

// GridPattern provides coordinate access to tabular controls.
type GridPattern interface {
	RowCount() (int, error)
	ColumnCount() (int, error)
	Cell(row, col int) (Element, error)
}

// TablePattern exposes a tabular control's column header elements.
type TablePattern interface {
	ColumnHeaders() ([]Element, error)
}

// TextPattern reads a control's full document text.
type TextPattern interface {
	Text() (string, error)
}

// RangeValuePattern reads numeric-range controls (sliders, spinners).
type RangeValuePattern interface {
	Value() (float64, error)
}

// LegacyPattern is the secondary accessibility interface older controls
// expose. Both calls are best-effort fallbacks.
type LegacyPattern interface {
	DoDefaultAction() error
	Value() (string, error)
}

// ExpandCollapsePattern opens collapsible containers (menus, tree items).
type ExpandCollapsePattern interface {
	Expand() error
}
