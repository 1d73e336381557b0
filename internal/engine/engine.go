package engine

import (
	"errors"
	"fmt"
	"time"

	"uidriver/internal/catalog"
	"uidriver/internal/logger"
	"uidriver/internal/platform"
	"uidriver/internal/uia"
)

// Settle delays let the target application's UI catch up after actions that
// mutate its tree.
const (
	ancestorSettle = 100 * time.Millisecond
	clickSettle    = 50 * time.Millisecond
	editModeSettle = 150 * time.Millisecond
)

var errEmptyBounds = errors.New("control has zero-size bounds, cannot click")

// Engine is the resolution-and-action core. It is synchronous and assumes at
// most one in-flight operation: simulated pointer and focus manipulation act
// on OS-global state.
type Engine struct {
	catalog       *catalog.Catalog
	desktop       platform.Desktop
	input         platform.Inputter
	windowPattern string
	log           *logger.Logger
	tablePolicy   TablePolicy

	// sleep is swapped out in tests so settle delays cost nothing.
	sleep func(time.Duration)
}

// New builds an engine over a loaded catalog and platform backends. log may
// be nil.
func New(cat *catalog.Catalog, p *platform.Provider, windowPattern string, log *logger.Logger) *Engine {
	return &Engine{
		catalog:       cat,
		desktop:       p.Desktop,
		input:         p.Inputter,
		windowPattern: windowPattern,
		log:           log,
		tablePolicy:   DefaultTablePolicy(),
		sleep:         time.Sleep,
	}
}

// SetTablePolicy overrides the heuristic table classification.
func (e *Engine) SetTablePolicy(p TablePolicy) { e.tablePolicy = p }

// Keys lists the catalog's descriptor keys, sorted.
func (e *Engine) Keys() []string { return e.catalog.Keys() }

// Descriptor returns the descriptor for key, matched case-insensitively.
func (e *Engine) Descriptor(key string) (*catalog.Descriptor, bool) {
	return e.catalog.Get(key)
}

func (e *Engine) lookup(key string) (*catalog.Descriptor, error) {
	d, ok := e.catalog.Get(key)
	if !ok {
		return nil, fmt.Errorf("no descriptor %q in catalog", key)
	}
	return d, nil
}

// begin builds the fresh per-operation context. Resolution caches never
// survive across operations because window titles drift.
func (e *Engine) begin() (*opContext, error) {
	return newContext(e.desktop, e.windowPattern)
}

// Invoke locates the control for key and performs its preferred action,
// returning the name of the action tier that succeeded.
func (e *Engine) Invoke(key string) (string, error) {
	d, err := e.lookup(key)
	if err != nil {
		return "", err
	}
	ctx, err := e.begin()
	if err != nil {
		return "", err
	}
	el, err := e.find(ctx, d)
	if err != nil {
		return "", err
	}
	action, err := e.execute(el, d)
	if err != nil {
		return "", err
	}
	e.log.Info("action executed", "key", d.Key, "action", action)
	return action, nil
}

// Set assigns value to the control for key.
func (e *Engine) Set(key, value string) (*SetResult, error) {
	d, err := e.lookup(key)
	if err != nil {
		return nil, err
	}
	ctx, err := e.begin()
	if err != nil {
		return nil, err
	}
	el, err := e.find(ctx, d)
	if err != nil {
		return nil, err
	}
	res, err := e.setValue(el, d, value)
	if err != nil {
		return nil, err
	}
	e.log.Info("value assigned", "key", d.Key, "value", value)
	return res, nil
}

// Collect extracts tabular content from the control for key.
func (e *Engine) Collect(key string) (*Table, error) {
	d, err := e.lookup(key)
	if err != nil {
		return nil, err
	}
	ctx, err := e.begin()
	if err != nil {
		return nil, err
	}
	el, err := e.find(ctx, d)
	if err != nil {
		return nil, err
	}
	return e.extractTable(el, d)
}

// Diagnosis describes a located control: what the catalog declared versus
// what the live control actually supports.
type Diagnosis struct {
	Key             string   `json:"key" yaml:"key"`
	Name            string   `json:"name" yaml:"name"`
	ControlType     string   `json:"control_type" yaml:"control_type"`
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	Bounds          uia.Rect `json:"bounds" yaml:"bounds"`
	PreferredAction string   `json:"preferred_action" yaml:"preferred_action"`
	Declared        []string `json:"declared_patterns" yaml:"declared_patterns"`
	Live            []string `json:"live_patterns" yaml:"live_patterns"`
}

var allPatterns = []string{
	uia.PatternInvoke,
	uia.PatternToggle,
	uia.PatternSelectionItem,
	uia.PatternValue,
	uia.PatternGrid,
	uia.PatternTable,
	uia.PatternText,
	uia.PatternRangeValue,
	uia.PatternLegacy,
	uia.PatternExpandCollapse,
}

// Diagnose locates the control for key and reports its live identity,
// bounds, and pattern support alongside the catalog's declarations. The
// disabled check is skipped: a diagnosis of a disabled control is still
// useful.
func (e *Engine) Diagnose(key string) (*Diagnosis, error) {
	d, err := e.lookup(key)
	if err != nil {
		return nil, err
	}
	ctx, err := e.begin()
	if err != nil {
		return nil, err
	}
	el, err := e.find(ctx, d)
	var disabled *DisabledError
	if errors.As(err, &disabled) {
		el = e.findOnce(ctx, d)
	} else if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, &NotFoundError{Key: d.Key}
	}

	diag := &Diagnosis{
		Key:             d.Key,
		Name:            el.Name(),
		ControlType:     el.ControlType().String(),
		Enabled:         el.IsEnabled(),
		Bounds:          el.Bounds(),
		PreferredAction: d.PreferredAction.String(),
		Declared:        d.Capabilities,
	}
	for _, name := range allPatterns {
		if _, ok := el.Pattern(name); ok {
			diag.Live = append(diag.Live, name)
		}
	}
	return diag, nil
}
