package engine

import (
	"uidriver/internal/catalog"
	"uidriver/internal/uia"
)

// execute performs the descriptor's preferred action on a located control,
// falling through an ordered chain of capability attempts. Each attempt
// reports whether it handled the control; errors inside an attempt fall
// through to the next tier rather than propagating. The returned name is the
// tier that actually succeeded, which can differ from the preferred action
// when a fallback handled the control.
func (e *Engine) execute(el uia.Element, d *catalog.Descriptor) (string, error) {
	type attempt struct {
		name string
		try  func(uia.Element) bool
	}

	invoke := attempt{"Invoke", e.tryInvoke}
	toggle := attempt{"Toggle", e.tryToggle}
	sel := attempt{"Select", e.trySelect}
	deflt := attempt{"Default", e.tryDefault}

	var chain []attempt
	switch d.PreferredAction {
	case catalog.ActionToggle:
		chain = []attempt{toggle, invoke, sel, deflt}
	case catalog.ActionSelect:
		chain = []attempt{sel, invoke, toggle, deflt}
	default: // Invoke and Default share an order.
		chain = []attempt{invoke, sel, toggle, deflt}
	}

	for _, a := range chain {
		if a.try(el) {
			return a.name, nil
		}
	}
	return "", &NoSupportedActionError{Key: d.Key, Declared: d.Capabilities}
}

// tryInvoke activates the control: the invoke capability first, then the
// legacy default action, then a simulated double-click at the control's
// center. Later tiers run only when the earlier ones are unsupported or fail.
func (e *Engine) tryInvoke(el uia.Element) bool {
	if p, ok := el.Pattern(uia.PatternInvoke); ok {
		if inv, ok := p.(uia.InvokePattern); ok && inv.Invoke() == nil {
			return true
		}
	}
	if p, ok := el.Pattern(uia.PatternLegacy); ok {
		if leg, ok := p.(uia.LegacyPattern); ok && leg.DoDefaultAction() == nil {
			return true
		}
	}
	return e.doubleClick(el) == nil
}

// tryToggle flips the control's state once. Target-state convergence belongs
// to the value setter, not here.
func (e *Engine) tryToggle(el uia.Element) bool {
	p, ok := el.Pattern(uia.PatternToggle)
	if !ok {
		return false
	}
	tog, ok := p.(uia.TogglePattern)
	return ok && tog.Toggle() == nil
}

// trySelect selects the control and then focuses it. Focus is best-effort and
// never fails the selection.
func (e *Engine) trySelect(el uia.Element) bool {
	p, ok := el.Pattern(uia.PatternSelectionItem)
	if !ok {
		return false
	}
	sel, ok := p.(uia.SelectionItemPattern)
	if !ok || sel.Select() != nil {
		return false
	}
	e.focus(el)
	return true
}

// tryDefault is the terminal generic attempt: the legacy default action, then
// a double-click.
func (e *Engine) tryDefault(el uia.Element) bool {
	if p, ok := el.Pattern(uia.PatternLegacy); ok {
		if leg, ok := p.(uia.LegacyPattern); ok && leg.DoDefaultAction() == nil {
			return true
		}
	}
	return e.doubleClick(el) == nil
}

// focus moves keyboard focus to el, swallowing any failure.
func (e *Engine) focus(el uia.Element) {
	if err := el.SetFocus(); err != nil {
		e.log.Debug("focus failed", "error", err.Error())
	}
}

// doubleClick simulates two clicks at the control's bounding-box center with
// short settle delays, restoring the cursor afterwards. The cursor is an
// OS-global resource so the restore runs even when a click fails.
func (e *Engine) doubleClick(el uia.Element) error {
	bounds := el.Bounds()
	if bounds.Empty() {
		return errEmptyBounds
	}
	x, y := bounds.Center()
	return e.withCursorRestored(func() error {
		if err := e.input.MoveMouse(x, y); err != nil {
			return err
		}
		if err := e.input.Click(x, y, 1); err != nil {
			return err
		}
		e.sleep(clickSettle)
		if err := e.input.Click(x, y, 1); err != nil {
			return err
		}
		e.sleep(clickSettle)
		return nil
	})
}

// withCursorRestored saves the cursor position, runs fn, and moves the cursor
// back. A failed save skips the restore but still runs fn.
func (e *Engine) withCursorRestored(fn func() error) error {
	x, y, err := e.input.CursorPos()
	saved := err == nil
	defer func() {
		if saved {
			e.input.MoveMouse(x, y)
		}
	}()
	return fn()
}
