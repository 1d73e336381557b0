package engine

import (
	"fmt"
	"strings"
)

// DefinitionError means a descriptor declares no usable identity hint, so no
// search was attempted.
type DefinitionError struct {
	Key string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("descriptor %q has no search criteria (needs Name, AutomationId, or ControlType)", e.Key)
}

// NotFoundError means every search tier was exhausted without a match.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("control %q not found", e.Key)
}

// DisabledError means the control was located but is not enabled, so no
// action was attempted.
type DisabledError struct {
	Key  string
	Name string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("control %q (%s) is disabled", e.Key, e.Name)
}

// NoSupportedActionError means every action attempt in the fallback chain
// failed. Declared lists the capabilities the descriptor advertised, to aid
// diagnosis of stale dumps.
type NoSupportedActionError struct {
	Key      string
	Declared []string
}

func (e *NoSupportedActionError) Error() string {
	if len(e.Declared) == 0 {
		return fmt.Sprintf("no supported action succeeded on %q (no declared capabilities)", e.Key)
	}
	return fmt.Sprintf("no supported action succeeded on %q (declared: %s)", e.Key, strings.Join(e.Declared, ", "))
}

// ValueAssignmentError means every value-setting strategy failed.
type ValueAssignmentError struct {
	Key  string
	Name string
}

func (e *ValueAssignmentError) Error() string {
	return fmt.Sprintf("could not assign value to %q (%s)", e.Key, e.Name)
}

// WindowNotFoundError means no visible top-level window matched the
// configured title pattern.
type WindowNotFoundError struct {
	Pattern string
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("no window matching %q", e.Pattern)
}
