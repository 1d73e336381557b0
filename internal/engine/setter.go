package engine

import (
	"fmt"
	"strings"

	"uidriver/internal/catalog"
	"uidriver/internal/uia"
)

// toggleBudget caps how many times the setter flips a two-state control while
// converging on the requested state.
const toggleBudget = 4

// SetResult reports the outcome of a value assignment. ToggleState is set
// when the control exposes a toggle capability, for caller visibility.
type SetResult struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	ToggleState *bool  `json:"toggle_state,omitempty" yaml:"toggle_state,omitempty"`
}

// setValue assigns value to a located control. Strategy order: direct
// assignment through the writable data capability, toggle-to-state for
// two-state controls, then the edit-mode double-click fallback when the data
// capability fronts as read-only.
func (e *Engine) setValue(el uia.Element, d *catalog.Descriptor, value string) (*SetResult, error) {
	res := &SetResult{Key: d.Key, Value: value}

	if vp, ok := valuePattern(el); ok {
		readOnly, err := vp.ReadOnly()
		if err == nil && !readOnly {
			if vp.SetValue(value) == nil {
				res.ToggleState = e.toggleState(el)
				return res, nil
			}
		} else if e.setViaEditMode(el, value) {
			res.ToggleState = e.toggleState(el)
			return res, nil
		}
	} else if tp, ok := togglePattern(el); ok {
		want, err := parseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean for toggle control %q: %w", value, d.Key, err)
		}
		if e.toggleToState(tp, want) {
			res.ToggleState = e.toggleState(el)
			return res, nil
		}
	}

	return nil, &ValueAssignmentError{Key: d.Key, Name: d.Name}
}

// toggleToState flips the control until its live state matches want, checking
// after each flip, giving up after the attempt budget.
func (e *Engine) toggleToState(tp uia.TogglePattern, want bool) bool {
	if state, err := tp.State(); err == nil && state == want {
		return true
	}
	for i := 0; i < toggleBudget; i++ {
		if tp.Toggle() != nil {
			return false
		}
		if state, err := tp.State(); err == nil && state == want {
			return true
		}
	}
	return false
}

// setViaEditMode handles read-only-fronted editable proxies: focus, simulated
// double-click to enter edit mode, settle, then assign to whichever control
// now holds focus, else to an editable descendant, else retry the original.
func (e *Engine) setViaEditMode(el uia.Element, value string) bool {
	e.focus(el)
	if e.doubleClick(el) != nil {
		return false
	}
	e.sleep(editModeSettle)

	if focused, err := e.desktop.FocusedElement(); err == nil && focused != nil && focused != el {
		if assignDirect(focused, value) {
			return true
		}
	}
	editable := uia.FindFirst(el, func(c uia.Element) bool {
		if c == el {
			return false
		}
		vp, ok := valuePattern(c)
		if !ok {
			return false
		}
		readOnly, err := vp.ReadOnly()
		return err == nil && !readOnly
	})
	if editable != nil && assignDirect(editable, value) {
		return true
	}
	return assignDirect(el, value)
}

func assignDirect(el uia.Element, value string) bool {
	vp, ok := valuePattern(el)
	return ok && vp.SetValue(value) == nil
}

// toggleState reads the control's toggle state if it has one.
func (e *Engine) toggleState(el uia.Element) *bool {
	tp, ok := togglePattern(el)
	if !ok {
		return nil
	}
	state, err := tp.State()
	if err != nil {
		return nil
	}
	return &state
}

func valuePattern(el uia.Element) (uia.ValuePattern, bool) {
	p, ok := el.Pattern(uia.PatternValue)
	if !ok {
		return nil, false
	}
	vp, ok := p.(uia.ValuePattern)
	return vp, ok
}

func togglePattern(el uia.Element) (uia.TogglePattern, bool) {
	p, ok := el.Pattern(uia.PatternToggle)
	if !ok {
		return nil, false
	}
	tp, ok := p.(uia.TogglePattern)
	return tp, ok
}

// parseBool accepts the usual spellings of a boolean value.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized boolean %q", s)
}
