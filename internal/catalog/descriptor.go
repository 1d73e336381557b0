// Package catalog holds the descriptor catalog: the declarative records that
// describe how to find and act on each control of the target application.
// Descriptors are built once from a dump file and are immutable afterwards.
package catalog

import (
	"sort"
	"strings"

	"uidriver/internal/uia"
)

// Action is a descriptor's preferred action strategy.
type Action int

const (
	ActionDefault Action = iota
	ActionInvoke
	ActionToggle
	ActionSelect
)

func (a Action) String() string {
	switch a {
	case ActionInvoke:
		return "Invoke"
	case ActionToggle:
		return "Toggle"
	case ActionSelect:
		return "Select"
	default:
		return "Default"
	}
}

// Descriptor describes one logical control. All fields are fixed at load time.
type Descriptor struct {
	// Key is the unique, case-insensitive catalog identifier.
	Key string

	// Identity hints. At least one must be present for the descriptor to be
	// resolvable (HasSearchCriteria).
	Name         string
	AutomationID string
	ControlType  uia.ControlType

	// Capabilities is the declared pattern-name set, deduplicated
	// case-insensitively, merged from the Patterns field and
	// "X available: true" metadata lines.
	Capabilities []string

	// PreferredAction is derived once at construction; see deriveAction.
	PreferredAction Action

	// Ancestors lists container-name patterns outermost first. Entries may
	// contain the {MainWindowTitle} and {FileName} placeholder tokens and
	// the * and ? glob wildcards.
	Ancestors []string

	// SelectionContainer optionally names a container whose first child of
	// the declared control type stands in for the target when direct search
	// fails (pick-one list/grid semantics).
	SelectionContainer string

	// EnabledHint is the enabled state captured when the dump was taken.
	// Advisory only: the live control's state is authoritative.
	EnabledHint *bool

	// Raw preserves the entry's original dump lines. Used only as the
	// last-resort source for table header inference.
	Raw []string
}

// HasSearchCriteria reports whether the descriptor declares at least one
// identity hint. Descriptors without one can never be resolved.
func (d *Descriptor) HasSearchCriteria() bool {
	return d.AutomationID != "" || d.Name != "" || d.ControlType != uia.TypeUnknown
}

// HasCapability reports whether the named pattern was declared, matching
// case-insensitively and tolerating a missing "Pattern" suffix.
func (d *Descriptor) HasCapability(name string) bool {
	for _, c := range d.Capabilities {
		if strings.EqualFold(c, name) || strings.EqualFold(c+"Pattern", name) || strings.EqualFold(c, name+"Pattern") {
			return true
		}
	}
	return false
}

// deriveAction computes the preferred action for a (controlType, capabilities)
// pair. The precedence is fixed: toggle-style controls first, then selection,
// then invoke, else default. The derivation is pure so reloading a catalog
// always yields the same result.
func deriveAction(d *Descriptor) Action {
	switch {
	case d.ControlType == uia.TypeCheckBox || d.HasCapability(uia.PatternToggle):
		return ActionToggle
	case d.HasCapability(uia.PatternSelectionItem):
		return ActionSelect
	case d.HasCapability(uia.PatternInvoke),
		d.ControlType == uia.TypeButton,
		d.ControlType == uia.TypeMenuItem:
		return ActionInvoke
	default:
		return ActionDefault
	}
}

// Catalog maps symbolic keys to descriptors. Lookup is case-insensitive.
type Catalog struct {
	byKey map[string]*Descriptor
}

// NewCatalog builds a catalog from descriptors. Later duplicates of a key win,
// matching last-entry-wins dump semantics.
func NewCatalog(descriptors []*Descriptor) *Catalog {
	c := &Catalog{byKey: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		c.byKey[strings.ToLower(d.Key)] = d
	}
	return c
}

// Get returns the descriptor for key, matched case-insensitively.
func (c *Catalog) Get(key string) (*Descriptor, bool) {
	d, ok := c.byKey[strings.ToLower(key)]
	return d, ok
}

// Keys returns all descriptor keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for _, d := range c.byKey {
		keys = append(keys, d.Key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int { return len(c.byKey) }
