package uia_test

import (
	"testing"

	"uidriver/internal/uia"
	"uidriver/internal/uia/uiatest"
)

func tree() *uiatest.Node {
	return &uiatest.Node{NodeName: "root", Kids: []*uiatest.Node{
		{NodeName: "a", Kids: []*uiatest.Node{
			{NodeName: "x", Type: uia.TypeButton},
			{NodeName: "y", Type: uia.TypeButton},
		}},
		{NodeName: "x", Type: uia.TypeText},
	}}
}

func TestFindFirstIsPreorder(t *testing.T) {
	got := uia.FindFirst(tree(), func(el uia.Element) bool { return el.Name() == "x" })
	if got == nil {
		t.Fatal("FindFirst returned nil")
	}
	// The button under "a" comes before the top-level text node.
	if got.ControlType() != uia.TypeButton {
		t.Errorf("ControlType = %v, want Button", got.ControlType())
	}
}

func TestFindFirstIncludesRoot(t *testing.T) {
	root := tree()
	got := uia.FindFirst(root, func(el uia.Element) bool { return el.Name() == "root" })
	if got != uia.Element(root) {
		t.Error("root itself should be matchable")
	}
}

func TestFindFirstNilRoot(t *testing.T) {
	if got := uia.FindFirst(nil, func(uia.Element) bool { return true }); got != nil {
		t.Errorf("FindFirst(nil) = %v, want nil", got)
	}
}

func TestFindAll(t *testing.T) {
	got := uia.FindAll(tree(), func(el uia.Element) bool { return el.ControlType() == uia.TypeButton })
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name() != "x" || got[1].Name() != "y" {
		t.Errorf("order = %q, %q; want x, y", got[0].Name(), got[1].Name())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  OK  ", "OK"},
		{"Run\n Simulation", "Run Simulation"},
		{"a\t\tb   c", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := uia.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
