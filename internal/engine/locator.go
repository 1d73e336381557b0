package engine

import (
	"strings"

	"uidriver/internal/catalog"
	"uidriver/internal/uia"
)

// find locates a descriptor's live control. The layered search runs once;
// if it misses, every declared ancestor is opened and the search runs exactly
// once more. A located control must report itself enabled.
func (e *Engine) find(ctx *opContext, d *catalog.Descriptor) (uia.Element, error) {
	if !d.HasSearchCriteria() {
		return nil, &DefinitionError{Key: d.Key}
	}

	el := e.findOnce(ctx, d)
	if el == nil {
		e.openAncestors(ctx, d)
		el = e.findOnce(ctx, d)
	}
	if el == nil {
		return nil, &NotFoundError{Key: d.Key}
	}

	if !el.IsEnabled() {
		return nil, &DisabledError{Key: d.Key, Name: d.Name}
	}
	if d.EnabledHint != nil && !*d.EnabledHint {
		e.log.Warn("control is enabled but the catalog captured it disabled",
			"key", d.Key)
	}
	return el, nil
}

// findOnce runs the layered search: composite match under the narrowed root,
// normalized-name retry, selection-container pick, main-window retry, global
// retry. Each tier short-circuits on the first hit.
func (e *Engine) findOnce(ctx *opContext, d *catalog.Descriptor) uia.Element {
	root := e.narrowRoot(ctx, d)

	match := compositeCondition(d)
	if el := uia.FindFirst(root, match); el != nil {
		return el
	}

	if d.Name != "" {
		want := strings.ToLower(uia.Normalize(d.Name))
		el := uia.FindFirst(root, func(c uia.Element) bool {
			if d.ControlType != uia.TypeUnknown && c.ControlType() != d.ControlType {
				return false
			}
			return strings.ToLower(uia.Normalize(c.Name())) == want
		})
		if el != nil {
			return el
		}
	}

	if name := resolveContainer(ctx, d); name != "" {
		if el := e.pickFromContainer(ctx, name, d.ControlType); el != nil {
			return el
		}
	}

	if root != ctx.window {
		if el := uia.FindFirst(ctx.window, match); el != nil {
			return el
		}
	}

	// Detached dialogs can render outside the window hierarchy entirely.
	if global, err := e.desktop.Root(); err == nil && global != nil {
		if el := uia.FindFirst(global, match); el != nil {
			return el
		}
	}
	return nil
}

// narrowRoot walks the resolved ancestor list outermost-first, scoping the
// search root tighter at each hop. Each ancestor is looked up within the
// current root, then the main window, then globally; a miss leaves the root
// unchanged and the walk continues.
func (e *Engine) narrowRoot(ctx *opContext, d *catalog.Descriptor) uia.Element {
	root := ctx.window
	for _, name := range resolveAncestors(ctx, d) {
		if isSkipAncestor(ctx, name) {
			continue
		}
		if el := e.findByName(ctx, root, name); el != nil {
			root = el
		}
	}
	return root
}

// findByName locates an element whose name matches exactly or, when the
// pattern carries wildcards, under anchored glob semantics. Scope order is
// current root, main window, global tree.
func (e *Engine) findByName(ctx *opContext, root uia.Element, pattern string) uia.Element {
	match := nameCondition(pattern)
	if el := uia.FindFirst(root, match); el != nil {
		return el
	}
	if root != ctx.window {
		if el := uia.FindFirst(ctx.window, match); el != nil {
			return el
		}
	}
	if global, err := e.desktop.Root(); err == nil && global != nil {
		if el := uia.FindFirst(global, match); el != nil {
			return el
		}
	}
	return nil
}

// pickFromContainer returns the container's first child of the wanted control
// type, modelling pick-one list and grid semantics.
func (e *Engine) pickFromContainer(ctx *opContext, name string, want uia.ControlType) uia.Element {
	container := e.findByName(ctx, ctx.window, name)
	if container == nil {
		return nil
	}
	for _, c := range container.Children() {
		if want == uia.TypeUnknown || c.ControlType() == want {
			return c
		}
	}
	return nil
}

// openAncestors expands or invokes every declared ancestor outermost-first so
// that lazily-built descendants become reachable. All failures here are
// swallowed; the subsequent retry search decides whether opening helped.
func (e *Engine) openAncestors(ctx *opContext, d *catalog.Descriptor) {
	for _, name := range resolveAncestors(ctx, d) {
		if isSkipAncestor(ctx, name) {
			continue
		}
		el := e.findByName(ctx, ctx.window, name)
		if el == nil {
			e.log.Debug("ancestor not found while opening", "key", d.Key, "ancestor", name)
			continue
		}
		e.openElement(el)
		e.sleep(ancestorSettle)
	}
}

// openElement tries expand, then invoke, then the legacy default action, in
// that order, stopping at the first capability that works.
func (e *Engine) openElement(el uia.Element) {
	if p, ok := el.Pattern(uia.PatternExpandCollapse); ok {
		if ec, ok := p.(uia.ExpandCollapsePattern); ok && ec.Expand() == nil {
			return
		}
	}
	if p, ok := el.Pattern(uia.PatternInvoke); ok {
		if inv, ok := p.(uia.InvokePattern); ok && inv.Invoke() == nil {
			return
		}
	}
	if p, ok := el.Pattern(uia.PatternLegacy); ok {
		if leg, ok := p.(uia.LegacyPattern); ok {
			leg.DoDefaultAction()
		}
	}
}

// compositeCondition ANDs together whichever identity hints the descriptor
// declares.
func compositeCondition(d *catalog.Descriptor) func(uia.Element) bool {
	return func(el uia.Element) bool {
		if d.AutomationID != "" && el.AutomationID() != d.AutomationID {
			return false
		}
		if d.Name != "" && el.Name() != d.Name {
			return false
		}
		if d.ControlType != uia.TypeUnknown && el.ControlType() != d.ControlType {
			return false
		}
		return true
	}
}

func nameCondition(pattern string) func(uia.Element) bool {
	if hasWildcard(pattern) {
		if re, err := wildcardRegexp(pattern); err == nil {
			return func(el uia.Element) bool { return re.MatchString(el.Name()) }
		}
	}
	return func(el uia.Element) bool { return el.Name() == pattern }
}
