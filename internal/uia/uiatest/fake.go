// Package uiatest provides a scriptable fake UI tree for engine tests.
// A Node implements uia.Element; patterns are enabled by setting the
// corresponding function fields, so a test can model anything from a plain
// text node to a grid with read-only cells.
package uiatest

import (
	"errors"

	"uidriver/internal/uia"
)

// Node is a fake live control. Zero value is a nameless, pattern-less,
// enabled element with no children.
type Node struct {
	NodeName string
	ID       string
	Type     uia.ControlType
	Disabled bool
	Rect     uia.Rect
	Kids     []*Node

	// FocusErr, when set, is returned from SetFocus. FocusCount counts calls
	// either way.
	FocusErr   error
	FocusCount int

	// Pattern hooks. A nil hook means the pattern is unsupported, except
	// where noted.
	InvokeFunc     func() error
	ToggleFunc     func() error
	ToggleState    func() (bool, error)
	SelectFunc     func() error
	IsSelectedFunc func() (bool, error)
	ValueFunc      func() (string, error)
	SetValueFunc   func(string) error
	ReadOnlyFunc   func() (bool, error) // nil with SetValueFunc set = writable
	TextFunc       func() (string, error)
	RangeFunc      func() (float64, error)
	LegacyAction   func() error
	LegacyValue    func() (string, error)
	ExpandFunc     func() error

	// GridCells enables GridPattern: GridCells[row][col].
	GridCells [][]*Node
	// HeaderItems enables TablePattern.
	HeaderItems []*Node
}

var _ uia.Element = (*Node)(nil)

func (n *Node) Name() string                 { return n.NodeName }
func (n *Node) AutomationID() string         { return n.ID }
func (n *Node) ControlType() uia.ControlType { return n.Type }
func (n *Node) IsEnabled() bool              { return !n.Disabled }
func (n *Node) Bounds() uia.Rect             { return n.Rect }

func (n *Node) Children() []uia.Element {
	out := make([]uia.Element, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

func (n *Node) SetFocus() error {
	n.FocusCount++
	return n.FocusErr
}

func (n *Node) Pattern(name string) (any, bool) {
	switch name {
	case uia.PatternInvoke:
		if n.InvokeFunc != nil {
			return invokePattern{n}, true
		}
	case uia.PatternToggle:
		if n.ToggleFunc != nil || n.ToggleState != nil {
			return togglePattern{n}, true
		}
	case uia.PatternSelectionItem:
		if n.SelectFunc != nil {
			return selectionPattern{n}, true
		}
	case uia.PatternValue:
		if n.ValueFunc != nil || n.SetValueFunc != nil {
			return valuePattern{n}, true
		}
	case uia.PatternGrid:
		if n.GridCells != nil {
			return gridPattern{n}, true
		}
	case uia.PatternTable:
		if n.HeaderItems != nil {
			return tablePattern{n}, true
		}
	case uia.PatternText:
		if n.TextFunc != nil {
			return textPattern{n}, true
		}
	case uia.PatternRangeValue:
		if n.RangeFunc != nil {
			return rangePattern{n}, true
		}
	case uia.PatternLegacy:
		if n.LegacyAction != nil || n.LegacyValue != nil {
			return legacyPattern{n}, true
		}
	case uia.PatternExpandCollapse:
		if n.ExpandFunc != nil {
			return expandPattern{n}, true
		}
	}
	return nil, false
}

type invokePattern struct{ n *Node }

func (p invokePattern) Invoke() error { return p.n.InvokeFunc() }

type togglePattern struct{ n *Node }

func (p togglePattern) Toggle() error {
	if p.n.ToggleFunc == nil {
		return errors.New("toggle not scripted")
	}
	return p.n.ToggleFunc()
}

func (p togglePattern) State() (bool, error) {
	if p.n.ToggleState == nil {
		return false, errors.New("toggle state not scripted")
	}
	return p.n.ToggleState()
}

type selectionPattern struct{ n *Node }

func (p selectionPattern) Select() error { return p.n.SelectFunc() }

func (p selectionPattern) IsSelected() (bool, error) {
	if p.n.IsSelectedFunc == nil {
		return false, nil
	}
	return p.n.IsSelectedFunc()
}

type valuePattern struct{ n *Node }

func (p valuePattern) Value() (string, error) {
	if p.n.ValueFunc == nil {
		return "", nil
	}
	return p.n.ValueFunc()
}

func (p valuePattern) SetValue(v string) error {
	if p.n.SetValueFunc == nil {
		return errors.New("value is not writable")
	}
	return p.n.SetValueFunc(v)
}

func (p valuePattern) ReadOnly() (bool, error) {
	if p.n.ReadOnlyFunc != nil {
		return p.n.ReadOnlyFunc()
	}
	return p.n.SetValueFunc == nil, nil
}

type gridPattern struct{ n *Node }

func (p gridPattern) RowCount() (int, error) { return len(p.n.GridCells), nil }

func (p gridPattern) ColumnCount() (int, error) {
	if len(p.n.GridCells) == 0 {
		return 0, nil
	}
	return len(p.n.GridCells[0]), nil
}

func (p gridPattern) Cell(row, col int) (uia.Element, error) {
	if row < 0 || row >= len(p.n.GridCells) {
		return nil, errors.New("row out of range")
	}
	cells := p.n.GridCells[row]
	if col < 0 || col >= len(cells) {
		return nil, errors.New("column out of range")
	}
	if cells[col] == nil {
		return nil, errors.New("cell unavailable")
	}
	return cells[col], nil
}

type tablePattern struct{ n *Node }

func (p tablePattern) ColumnHeaders() ([]uia.Element, error) {
	out := make([]uia.Element, len(p.n.HeaderItems))
	for i, h := range p.n.HeaderItems {
		out[i] = h
	}
	return out, nil
}

type textPattern struct{ n *Node }

func (p textPattern) Text() (string, error) { return p.n.TextFunc() }

type rangePattern struct{ n *Node }

func (p rangePattern) Value() (float64, error) { return p.n.RangeFunc() }

type legacyPattern struct{ n *Node }

func (p legacyPattern) DoDefaultAction() error {
	if p.n.LegacyAction == nil {
		return errors.New("default action not scripted")
	}
	return p.n.LegacyAction()
}

func (p legacyPattern) Value() (string, error) {
	if p.n.LegacyValue == nil {
		return "", errors.New("legacy value not scripted")
	}
	return p.n.LegacyValue()
}

type expandPattern struct{ n *Node }

func (p expandPattern) Expand() error { return p.n.ExpandFunc() }
