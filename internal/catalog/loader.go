package catalog

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"uidriver/internal/uia"
)

// keyPattern restricts descriptor keys to alphanumerics, underscore, hyphen.
var keyPattern = regexp.MustCompile(`^\[([A-Za-z0-9_-]+)\]\s*$`)

// availablePattern matches capability metadata like "Invoke available: true".
var availablePattern = regexp.MustCompile(`(?i)^([A-Za-z]+)\s+available\s*$`)

// Load reads a descriptor dump from path. A missing file is not an error: it
// yields an empty catalog so the caller can report the condition without
// aborting startup.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCatalog(nil), nil
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the line-oriented dump format:
//
//	[key]                         starts an entry
//	Field: value                  populates it
//	# comment                     ignored
//	Ancestors:                    following lines (quoted or bare) list one
//	                              ancestor each, until a blank line
//
// Lines before the first [key] and blocks whose header is malformed are
// dropped silently.
func Parse(r io.Reader) (*Catalog, error) {
	var (
		descriptors []*Descriptor
		cur         *Descriptor
		inAncestors bool
	)

	commit := func() {
		if cur == nil {
			return
		}
		cur.Capabilities = dedupeCapabilities(cur.Capabilities)
		cur.PreferredAction = deriveAction(cur)
		descriptors = append(descriptors, cur)
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			commit()
			inAncestors = false
			if m := keyPattern.FindStringSubmatch(trimmed); m != nil {
				cur = &Descriptor{Key: m[1]}
			}
			continue
		}
		if cur == nil {
			continue
		}

		cur.Raw = append(cur.Raw, line)

		if inAncestors {
			if trimmed == "" {
				inAncestors = false
				continue
			}
			cur.Ancestors = append(cur.Ancestors, unquote(trimmed))
			continue
		}
		if trimmed == "" {
			continue
		}

		field, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		field = strings.TrimSpace(field)
		value = strings.TrimSpace(value)

		switch {
		case strings.EqualFold(field, "Ancestors"):
			inAncestors = true
		case strings.EqualFold(field, "Name"):
			cur.Name = unquote(value)
		case strings.EqualFold(field, "AutomationId") || strings.EqualFold(field, "AutomationID"):
			cur.AutomationID = value
		case strings.EqualFold(field, "ControlType"):
			cur.ControlType = uia.ParseControlType(value)
		case strings.EqualFold(field, "Patterns"):
			for _, p := range strings.Split(value, ",") {
				if p = strings.TrimSpace(p); p != "" {
					cur.Capabilities = append(cur.Capabilities, p)
				}
			}
		case strings.EqualFold(field, "IsEnabled"):
			if b, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
				hint := b
				cur.EnabledHint = &hint
			}
		case strings.EqualFold(field, "SelectionItem.SelectionContainer"):
			cur.SelectionContainer = unquote(value)
		default:
			if m := availablePattern.FindStringSubmatch(field); m != nil {
				if b, err := strconv.ParseBool(strings.ToLower(value)); err == nil && b {
					cur.Capabilities = append(cur.Capabilities, patternName(m[1]))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	commit()
	return NewCatalog(descriptors), nil
}

// patternName normalizes a bare capability word ("Invoke") to the pattern
// spelling used throughout ("InvokePattern").
func patternName(s string) string {
	if strings.HasSuffix(strings.ToLower(s), "pattern") {
		return s
	}
	return s + "Pattern"
}

func dedupeCapabilities(caps []string) []string {
	seen := make(map[string]bool, len(caps))
	var out []string
	for _, c := range caps {
		k := strings.ToLower(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
