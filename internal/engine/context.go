// Package engine implements the resolution-and-action core: resolving a
// descriptor's ancestor path against the live window, locating the control
// with a layered search, and executing actions, value assignment, or table
// extraction with ordered fallback chains.
package engine

import (
	"regexp"
	"strings"

	"uidriver/internal/platform"
	"uidriver/internal/uia"
)

// opContext carries the per-operation resolution state: the live main window,
// its title, the file-name token derived from the title, and per-descriptor
// caches of resolved ancestors and selection containers. A fresh context is
// built for every top-level operation because window titles, and therefore
// token values, drift between calls.
type opContext struct {
	window   uia.Element
	title    string
	fileName string

	ancestors  map[string][]string
	containers map[string]string
}

// newContext locates the main window by case-insensitive regular-expression
// match over visible top-level window titles. First match wins.
func newContext(desktop platform.Desktop, titlePattern string) (*opContext, error) {
	re, err := regexp.Compile("(?i)" + titlePattern)
	if err != nil {
		return nil, err
	}
	windows, err := desktop.Windows()
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if re.MatchString(w.Title) {
			return &opContext{
				window:     w.Root,
				title:      w.Title,
				fileName:   fileNameFromTitle(w.Title),
				ancestors:  map[string][]string{},
				containers: map[string]string{},
			}, nil
		}
	}
	return nil, &WindowNotFoundError{Pattern: titlePattern}
}

// fileNameFromTitle extracts the document name from a title segment shaped
// like "<name (local)>". Extraction is best-effort: a title without the
// bracket convention yields an empty token and the placeholder stays
// unresolved.
func fileNameFromTitle(title string) string {
	open := strings.Index(title, "<")
	if open < 0 {
		return ""
	}
	end := strings.Index(title[open:], ">")
	if end < 0 {
		return ""
	}
	inner := title[open+1 : open+end]
	if i := strings.LastIndex(inner, "("); i >= 0 {
		inner = inner[:i]
	}
	return strings.TrimSpace(inner)
}
