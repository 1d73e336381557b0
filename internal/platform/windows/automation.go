//go:build windows

package windows

import (
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

// UIA pattern identifiers.
const (
	patternIDInvoke            = 10000
	patternIDValue             = 10002
	patternIDRangeValue        = 10003
	patternIDExpandCollapse    = 10005
	patternIDGrid              = 10006
	patternIDSelectionItem     = 10010
	patternIDTable             = 10012
	patternIDText              = 10014
	patternIDToggle            = 10015
	patternIDLegacyIAccessible = 10018
)

const (
	treeScopeChildren = 2
	treeScopeSubtree  = 7
)

const (
	toggleStateOff = 0
	toggleStateOn  = 1
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// call invokes a COM method through a raw vtable slot. All UIA methods
// return an HRESULT.
func call(method uintptr, args ...uintptr) error {
	hr, _, _ := syscall.SyscallN(method, args...)
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

type iUIAutomation struct {
	ole.IUnknown
}

type iUIAutomationVtbl struct {
	ole.IUnknownVtbl
	CompareElements             uintptr
	CompareRuntimeIds           uintptr
	GetRootElement              uintptr
	ElementFromHandle           uintptr
	ElementFromPoint            uintptr
	GetFocusedElement           uintptr
	GetRootElementBuildCache    uintptr
	ElementFromHandleBuildCache uintptr
	ElementFromPointBuildCache  uintptr
	GetFocusedElementBuildCache uintptr
	CreateTreeWalker            uintptr
	GetControlViewWalker        uintptr
	GetContentViewWalker        uintptr
	GetRawViewWalker            uintptr
	GetRawViewCondition         uintptr
	GetControlViewCondition     uintptr
	GetContentViewCondition     uintptr
	CreateCacheRequest          uintptr
	CreateTrueCondition         uintptr
	CreateFalseCondition        uintptr
	CreatePropertyCondition     uintptr
}

func (a *iUIAutomation) vtbl() *iUIAutomationVtbl {
	return (*iUIAutomationVtbl)(unsafe.Pointer(a.RawVTable))
}

func (a *iUIAutomation) rootElement() (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	err := call(a.vtbl().GetRootElement,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&el)))
	return el, err
}

func (a *iUIAutomation) focusedElement() (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	err := call(a.vtbl().GetFocusedElement,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&el)))
	return el, err
}

func (a *iUIAutomation) trueCondition() (*ole.IUnknown, error) {
	var cond *ole.IUnknown
	err := call(a.vtbl().CreateTrueCondition,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&cond)))
	return cond, err
}

type iUIAutomationElement struct {
	ole.IUnknown
}

type iUIAutomationElementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                       uintptr
	GetRuntimeId                   uintptr
	FindFirst                      uintptr
	FindAll                        uintptr
	FindFirstBuildCache            uintptr
	FindAllBuildCache              uintptr
	BuildUpdatedCache              uintptr
	GetCurrentPropertyValue        uintptr
	GetCurrentPropertyValueEx      uintptr
	GetCachedPropertyValue         uintptr
	GetCachedPropertyValueEx       uintptr
	GetCurrentPatternAs            uintptr
	GetCachedPatternAs             uintptr
	GetCurrentPattern              uintptr
	GetCachedPattern               uintptr
	GetCurrentProcessId            uintptr
	GetCurrentControlType          uintptr
	GetCurrentLocalizedControlType uintptr
	GetCurrentName                 uintptr
	GetCurrentAcceleratorKey       uintptr
	GetCurrentAccessKey            uintptr
	GetCurrentHasKeyboardFocus     uintptr
	GetCurrentIsKeyboardFocusable  uintptr
	GetCurrentIsEnabled            uintptr
	GetCurrentAutomationId         uintptr
	GetCurrentClassName            uintptr
	GetCurrentHelpText             uintptr
	GetCurrentCulture              uintptr
	GetCurrentIsControlElement     uintptr
	GetCurrentIsContentElement     uintptr
	GetCurrentIsPassword           uintptr
	GetCurrentNativeWindowHandle   uintptr
	GetCurrentItemType             uintptr
	GetCurrentIsOffscreen          uintptr
	GetCurrentOrientation          uintptr
	GetCurrentFrameworkId          uintptr
	GetCurrentIsRequiredForForm    uintptr
	GetCurrentItemStatus           uintptr
	GetCurrentBoundingRectangle    uintptr
	GetCurrentLabeledBy            uintptr
	GetCurrentAriaRole             uintptr
}

func (e *iUIAutomationElement) vtbl() *iUIAutomationElementVtbl {
	return (*iUIAutomationElementVtbl)(unsafe.Pointer(e.RawVTable))
}

func (e *iUIAutomationElement) setFocus() error {
	return call(e.vtbl().SetFocus, uintptr(unsafe.Pointer(e)))
}

func (e *iUIAutomationElement) name() (string, error) {
	var bstr *uint16
	if err := call(e.vtbl().GetCurrentName,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	return takeBstr(bstr), nil
}

func (e *iUIAutomationElement) automationID() (string, error) {
	var bstr *uint16
	if err := call(e.vtbl().GetCurrentAutomationId,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	return takeBstr(bstr), nil
}

func (e *iUIAutomationElement) controlTypeID() (int32, error) {
	var id int32
	err := call(e.vtbl().GetCurrentControlType,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&id)))
	return id, err
}

func (e *iUIAutomationElement) isEnabled() (bool, error) {
	var v int32
	err := call(e.vtbl().GetCurrentIsEnabled,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&v)))
	return v != 0, err
}

func (e *iUIAutomationElement) boundingRect() (rect, error) {
	var r rect
	err := call(e.vtbl().GetCurrentBoundingRectangle,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&r)))
	return r, err
}

func (e *iUIAutomationElement) findAll(scope int, cond *ole.IUnknown) (*iUIAutomationElementArray, error) {
	var arr *iUIAutomationElementArray
	err := call(e.vtbl().FindAll,
		uintptr(unsafe.Pointer(e)), uintptr(scope),
		uintptr(unsafe.Pointer(cond)), uintptr(unsafe.Pointer(&arr)))
	return arr, err
}

func (e *iUIAutomationElement) pattern(patternID int) (*ole.IUnknown, error) {
	var p *ole.IUnknown
	err := call(e.vtbl().GetCurrentPattern,
		uintptr(unsafe.Pointer(e)), uintptr(patternID), uintptr(unsafe.Pointer(&p)))
	if err != nil {
		return nil, err
	}
	return p, nil
}

type iUIAutomationElementArray struct {
	ole.IUnknown
}

type iUIAutomationElementArrayVtbl struct {
	ole.IUnknownVtbl
	GetLength  uintptr
	GetElement uintptr
}

func (a *iUIAutomationElementArray) vtbl() *iUIAutomationElementArrayVtbl {
	return (*iUIAutomationElementArrayVtbl)(unsafe.Pointer(a.RawVTable))
}

func (a *iUIAutomationElementArray) length() (int, error) {
	var n int32
	err := call(a.vtbl().GetLength,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&n)))
	return int(n), err
}

func (a *iUIAutomationElementArray) element(i int) (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	err := call(a.vtbl().GetElement,
		uintptr(unsafe.Pointer(a)), uintptr(int32(i)), uintptr(unsafe.Pointer(&el)))
	return el, err
}

// takeBstr converts a BSTR to a Go string and frees it.
func takeBstr(bstr *uint16) string {
	if bstr == nil {
		return ""
	}
	s := ole.BstrToString(bstr)
	ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return s
}
