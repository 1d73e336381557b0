package uia

import "testing"

func TestParseControlType(t *testing.T) {
	tests := []struct {
		in   string
		want ControlType
	}{
		{"Button", TypeButton},
		{"button", TypeButton},
		{"ControlType.CheckBox", TypeCheckBox},
		{" DataItem ", TypeDataItem},
		{"SomethingNew", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		if got := ParseControlType(tt.in); got != tt.want {
			t.Errorf("ParseControlType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestControlTypeStringRoundTrip(t *testing.T) {
	for ct := TypeUnknown; ct <= TypeDocument; ct++ {
		if got := ParseControlType(ct.String()); got != ct {
			t.Errorf("ParseControlType(%q) = %v, want %v", ct.String(), got, ct)
		}
	}
}
