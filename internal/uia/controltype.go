package uia

import "strings"

// ControlType classifies a control. The set mirrors the type tags that appear
// in descriptor dumps; unknown tags map to TypeUnknown rather than erroring.
type ControlType int

const (
	TypeUnknown ControlType = iota
	TypeButton
	TypeCheckBox
	TypeRadioButton
	TypeMenuItem
	TypeTabItem
	TypeEdit
	TypeText
	TypeDataItem
	TypeListItem
	TypeList
	TypeTable
	TypeHeader
	TypeHeaderItem
	TypeCustom
	TypePane
	TypeGroup
	TypeWindow
	TypeDocument
)

var controlTypeNames = map[ControlType]string{
	TypeUnknown:     "Unknown",
	TypeButton:      "Button",
	TypeCheckBox:    "CheckBox",
	TypeRadioButton: "RadioButton",
	TypeMenuItem:    "MenuItem",
	TypeTabItem:     "TabItem",
	TypeEdit:        "Edit",
	TypeText:        "Text",
	TypeDataItem:    "DataItem",
	TypeListItem:    "ListItem",
	TypeList:        "List",
	TypeTable:       "Table",
	TypeHeader:      "Header",
	TypeHeaderItem:  "HeaderItem",
	TypeCustom:      "Custom",
	TypePane:        "Pane",
	TypeGroup:       "Group",
	TypeWindow:      "Window",
	TypeDocument:    "Document",
}

func (t ControlType) String() string {
	if name, ok := controlTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseControlType converts a dump type tag to a ControlType. Matching is
// case-insensitive and tolerates the "ControlType.X" prefix some dump tools
// emit. Unrecognized tags yield TypeUnknown.
func ParseControlType(s string) ControlType {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	for t, name := range controlTypeNames {
		if strings.EqualFold(s, name) {
			return t
		}
	}
	return TypeUnknown
}
