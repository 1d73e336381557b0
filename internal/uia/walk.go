package uia

import "strings"

// FindFirst returns the first element in root's subtree (root included) for
// which match returns true, in depth-first preorder, or nil.
func FindFirst(root Element, match func(Element) bool) Element {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for _, child := range root.Children() {
		if found := FindFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll collects every element in root's subtree (root included) for which
// match returns true, in depth-first preorder.
func FindAll(root Element, match func(Element) bool) []Element {
	var out []Element
	collect(root, match, &out)
	return out
}

func collect(el Element, match func(Element) bool, out *[]Element) {
	if el == nil {
		return
	}
	if match(el) {
		*out = append(*out, el)
	}
	for _, child := range el.Children() {
		collect(child, match, out)
	}
}

// Normalize collapses runs of whitespace (including line terminators) to a
// single space and trims the result. Live control names frequently embed
// newlines that the catalog's names lack.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
