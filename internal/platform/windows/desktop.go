//go:build windows

package windows

import (
	"uidriver/internal/platform"
	"uidriver/internal/uia"
)

// desktop reads windows and elements through a shared IUIAutomation instance.
type desktop struct {
	auto *iUIAutomation
}

var _ platform.Desktop = (*desktop)(nil)

func (d *desktop) Root() (uia.Element, error) {
	root, err := d.auto.rootElement()
	if err != nil {
		return nil, err
	}
	return &element{auto: d.auto, raw: root}, nil
}

// Windows lists the desktop root's window-typed children that carry a title.
func (d *desktop) Windows() ([]platform.WindowInfo, error) {
	root, err := d.Root()
	if err != nil {
		return nil, err
	}
	var out []platform.WindowInfo
	for _, child := range root.Children() {
		t := child.ControlType()
		if t != uia.TypeWindow && t != uia.TypePane {
			continue
		}
		title := child.Name()
		if title == "" {
			continue
		}
		out = append(out, platform.WindowInfo{Title: title, Root: child})
	}
	return out, nil
}

func (d *desktop) FocusedElement() (uia.Element, error) {
	el, err := d.auto.focusedElement()
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, nil
	}
	return &element{auto: d.auto, raw: el}, nil
}
