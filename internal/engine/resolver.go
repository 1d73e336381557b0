package engine

import (
	"regexp"
	"strings"

	"uidriver/internal/catalog"
)

// Placeholder tokens recognised in ancestor-path entries and
// selection-container names.
const (
	tokenMainWindowTitle = "{MainWindowTitle}"
	tokenFileName        = "{FileName}"
)

// desktopMarker prefixes ancestor entries that denote the platform desktop
// rather than an application container.
const desktopMarker = "Desktop"

// resolveAncestors turns a descriptor's raw ancestor-path entries into
// concrete names for the current window. Results are cached on the context,
// keyed by descriptor, so repeated lookups within one operation are stable.
func resolveAncestors(ctx *opContext, d *catalog.Descriptor) []string {
	key := strings.ToLower(d.Key)
	if cached, ok := ctx.ancestors[key]; ok {
		return cached
	}
	resolved := make([]string, 0, len(d.Ancestors))
	for _, raw := range d.Ancestors {
		resolved = append(resolved, resolveEntry(ctx, raw))
	}
	ctx.ancestors[key] = resolved
	return resolved
}

// resolveContainer resolves a descriptor's selection-container name, with the
// same substitution and caching rules as ancestors.
func resolveContainer(ctx *opContext, d *catalog.Descriptor) string {
	if d.SelectionContainer == "" {
		return ""
	}
	key := strings.ToLower(d.Key)
	if cached, ok := ctx.containers[key]; ok {
		return cached
	}
	resolved := resolveEntry(ctx, d.SelectionContainer)
	ctx.containers[key] = resolved
	return resolved
}

// resolveEntry applies placeholder substitution, strips stray line
// terminators, and collapses wildcard entries that the live window title
// already satisfies. Substitution is idempotent: tokens never produce text
// containing other tokens.
func resolveEntry(ctx *opContext, raw string) string {
	s := strings.ReplaceAll(raw, tokenMainWindowTitle, ctx.title)
	if ctx.fileName != "" {
		s = strings.ReplaceAll(s, tokenFileName, ctx.fileName)
	}
	s = strings.TrimRight(s, "\r\n")

	if hasWildcard(s) {
		if re, err := wildcardRegexp(s); err == nil && re.MatchString(ctx.title) {
			return ctx.title
		}
	}
	return s
}

// isSkipAncestor reports whether a resolved entry denotes the window itself
// or the desktop root. Such entries are no-ops for both root narrowing and
// ancestor opening.
func isSkipAncestor(ctx *opContext, resolved string) bool {
	return resolved == ctx.title || strings.HasPrefix(resolved, desktopMarker)
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// wildcardRegexp compiles a glob pattern into a fully anchored,
// case-insensitive regular expression. `*` matches any run of characters,
// `?` matches exactly one.
func wildcardRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
