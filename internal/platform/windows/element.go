//go:build windows

package windows

import (
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"uidriver/internal/uia"
)

var controlTypes = map[int32]uia.ControlType{
	50000: uia.TypeButton,
	50002: uia.TypeCheckBox,
	50004: uia.TypeEdit,
	50007: uia.TypeListItem,
	50008: uia.TypeList,
	50011: uia.TypeMenuItem,
	50013: uia.TypeRadioButton,
	50019: uia.TypeTabItem,
	50020: uia.TypeText,
	50025: uia.TypeCustom,
	50026: uia.TypeGroup,
	50028: uia.TypeTable,
	50029: uia.TypeDataItem,
	50030: uia.TypeDocument,
	50032: uia.TypeWindow,
	50033: uia.TypePane,
	50034: uia.TypeHeader,
	50035: uia.TypeHeaderItem,
	50036: uia.TypeTable,
}

// element adapts a live IUIAutomationElement to the portable interface.
type element struct {
	auto *iUIAutomation
	raw  *iUIAutomationElement
}

var _ uia.Element = (*element)(nil)

func (e *element) Name() string {
	s, err := e.raw.name()
	if err != nil {
		return ""
	}
	return s
}

func (e *element) AutomationID() string {
	s, err := e.raw.automationID()
	if err != nil {
		return ""
	}
	return s
}

func (e *element) ControlType() uia.ControlType {
	id, err := e.raw.controlTypeID()
	if err != nil {
		return uia.TypeUnknown
	}
	return controlTypes[id]
}

func (e *element) IsEnabled() bool {
	enabled, err := e.raw.isEnabled()
	if err != nil {
		return false
	}
	return enabled
}

func (e *element) Bounds() uia.Rect {
	r, err := e.raw.boundingRect()
	if err != nil {
		return uia.Rect{}
	}
	return uia.Rect{
		X: int(r.Left),
		Y: int(r.Top),
		W: int(r.Right - r.Left),
		H: int(r.Bottom - r.Top),
	}
}

func (e *element) Children() []uia.Element {
	cond, err := e.auto.trueCondition()
	if err != nil {
		return nil
	}
	defer cond.Release()

	arr, err := e.raw.findAll(treeScopeChildren, cond)
	if err != nil || arr == nil {
		return nil
	}
	defer arr.Release()

	n, err := arr.length()
	if err != nil {
		return nil
	}
	out := make([]uia.Element, 0, n)
	for i := 0; i < n; i++ {
		child, err := arr.element(i)
		if err != nil || child == nil {
			continue
		}
		out = append(out, &element{auto: e.auto, raw: child})
	}
	return out
}

func (e *element) SetFocus() error {
	return e.raw.setFocus()
}

func (e *element) Pattern(name string) (any, bool) {
	id, ok := patternIDs[name]
	if !ok {
		return nil, false
	}
	p, err := e.raw.pattern(id)
	if err != nil || p == nil {
		return nil, false
	}
	switch name {
	case uia.PatternInvoke:
		return &invokePattern{raw: p}, true
	case uia.PatternToggle:
		return &togglePattern{raw: p}, true
	case uia.PatternSelectionItem:
		return &selectionItemPattern{raw: p}, true
	case uia.PatternValue:
		return &valuePattern{raw: p}, true
	case uia.PatternGrid:
		return &gridPattern{auto: e.auto, raw: p}, true
	case uia.PatternTable:
		return &tablePattern{auto: e.auto, raw: p}, true
	case uia.PatternText:
		return &textPattern{raw: p}, true
	case uia.PatternRangeValue:
		return &rangeValuePattern{raw: p}, true
	case uia.PatternLegacy:
		return &legacyPattern{raw: p}, true
	case uia.PatternExpandCollapse:
		return &expandCollapsePattern{raw: p}, true
	}
	p.Release()
	return nil, false
}

var patternIDs = map[string]int{
	uia.PatternInvoke:         patternIDInvoke,
	uia.PatternToggle:         patternIDToggle,
	uia.PatternSelectionItem:  patternIDSelectionItem,
	uia.PatternValue:          patternIDValue,
	uia.PatternGrid:           patternIDGrid,
	uia.PatternTable:          patternIDTable,
	uia.PatternText:           patternIDText,
	uia.PatternRangeValue:     patternIDRangeValue,
	uia.PatternLegacy:         patternIDLegacyIAccessible,
	uia.PatternExpandCollapse: patternIDExpandCollapse,
}

func vtblSlot(unk *ole.IUnknown, slot int) uintptr {
	vtbl := *(**[64]uintptr)(unsafe.Pointer(unk))
	return vtbl[slot]
}

func self(unk *ole.IUnknown) uintptr {
	return uintptr(unsafe.Pointer(unk))
}

// Pattern vtable slots start at 3, after IUnknown.

type invokePattern struct{ raw *ole.IUnknown }

func (p *invokePattern) Invoke() error {
	return call(vtblSlot(p.raw, 3), self(p.raw))
}

type togglePattern struct{ raw *ole.IUnknown }

func (p *togglePattern) Toggle() error {
	return call(vtblSlot(p.raw, 3), self(p.raw))
}

func (p *togglePattern) State() (bool, error) {
	var state int32
	err := call(vtblSlot(p.raw, 4), self(p.raw), uintptr(unsafe.Pointer(&state)))
	return state == toggleStateOn, err
}

type selectionItemPattern struct{ raw *ole.IUnknown }

func (p *selectionItemPattern) Select() error {
	return call(vtblSlot(p.raw, 3), self(p.raw))
}

func (p *selectionItemPattern) IsSelected() (bool, error) {
	// Slot 6: Select, AddToSelection, RemoveFromSelection precede it.
	var v int32
	err := call(vtblSlot(p.raw, 6), self(p.raw), uintptr(unsafe.Pointer(&v)))
	return v != 0, err
}

type valuePattern struct{ raw *ole.IUnknown }

func (p *valuePattern) SetValue(v string) error {
	bstr := ole.SysAllocString(v)
	defer ole.SysFreeString(bstr)
	return call(vtblSlot(p.raw, 3), self(p.raw), uintptr(unsafe.Pointer(bstr)))
}

func (p *valuePattern) Value() (string, error) {
	var bstr *uint16
	if err := call(vtblSlot(p.raw, 4), self(p.raw), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	return takeBstr(bstr), nil
}

func (p *valuePattern) ReadOnly() (bool, error) {
	var v int32
	err := call(vtblSlot(p.raw, 5), self(p.raw), uintptr(unsafe.Pointer(&v)))
	return v != 0, err
}

type gridPattern struct {
	auto *iUIAutomation
	raw  *ole.IUnknown
}

func (p *gridPattern) Cell(row, col int) (uia.Element, error) {
	var el *iUIAutomationElement
	err := call(vtblSlot(p.raw, 3), self(p.raw),
		uintptr(int32(row)), uintptr(int32(col)), uintptr(unsafe.Pointer(&el)))
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, ole.NewError(ole.E_NOINTERFACE)
	}
	return &element{auto: p.auto, raw: el}, nil
}

func (p *gridPattern) RowCount() (int, error) {
	var n int32
	err := call(vtblSlot(p.raw, 4), self(p.raw), uintptr(unsafe.Pointer(&n)))
	return int(n), err
}

func (p *gridPattern) ColumnCount() (int, error) {
	var n int32
	err := call(vtblSlot(p.raw, 5), self(p.raw), uintptr(unsafe.Pointer(&n)))
	return int(n), err
}

type tablePattern struct {
	auto *iUIAutomation
	raw  *ole.IUnknown
}

func (p *tablePattern) ColumnHeaders() ([]uia.Element, error) {
	// Slot 4: GetCurrentRowHeaders precedes it.
	var arr *iUIAutomationElementArray
	if err := call(vtblSlot(p.raw, 4), self(p.raw), uintptr(unsafe.Pointer(&arr))); err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	defer arr.Release()

	n, err := arr.length()
	if err != nil {
		return nil, err
	}
	out := make([]uia.Element, 0, n)
	for i := 0; i < n; i++ {
		el, err := arr.element(i)
		if err != nil || el == nil {
			continue
		}
		out = append(out, &element{auto: p.auto, raw: el})
	}
	return out, nil
}

type textPattern struct{ raw *ole.IUnknown }

func (p *textPattern) Text() (string, error) {
	// Slot 7: get_DocumentRange.
	var docRange *ole.IUnknown
	if err := call(vtblSlot(p.raw, 7), self(p.raw), uintptr(unsafe.Pointer(&docRange))); err != nil {
		return "", err
	}
	if docRange == nil {
		return "", nil
	}
	defer docRange.Release()

	// IUIAutomationTextRange::GetText(maxLength, retVal) at slot 12;
	// -1 reads the whole range.
	var bstr *uint16
	if err := call(vtblSlot(docRange, 12), self(docRange),
		uintptr(^uintptr(0)), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	return takeBstr(bstr), nil
}

type rangeValuePattern struct{ raw *ole.IUnknown }

func (p *rangeValuePattern) Value() (float64, error) {
	// Slot 4: SetValue precedes it.
	var v float64
	err := call(vtblSlot(p.raw, 4), self(p.raw), uintptr(unsafe.Pointer(&v)))
	return v, err
}

type legacyPattern struct{ raw *ole.IUnknown }

func (p *legacyPattern) DoDefaultAction() error {
	// Slot 4: Select precedes it.
	return call(vtblSlot(p.raw, 4), self(p.raw))
}

func (p *legacyPattern) Value() (string, error) {
	// Slot 8: Select, DoDefaultAction, SetValue, get_CurrentChildId,
	// get_CurrentName precede it.
	var bstr *uint16
	if err := call(vtblSlot(p.raw, 8), self(p.raw), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	return takeBstr(bstr), nil
}

type expandCollapsePattern struct{ raw *ole.IUnknown }

func (p *expandCollapsePattern) Expand() error {
	return call(vtblSlot(p.raw, 3), self(p.raw))
}
