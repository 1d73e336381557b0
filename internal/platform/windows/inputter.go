//go:build windows

package windows

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"uidriver/internal/platform"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procSendInput    = user32.NewProc("SendInput")
)

const (
	inputMouse          = 0
	mouseEventfLeftDown = 0x0002
	mouseEventfLeftUp   = 0x0004
)

type point struct {
	X, Y int32
}

// mouseInput is the INPUT struct restricted to its MOUSEINPUT arm, padded to
// the union's full size on 64-bit Windows.
type mouseInput struct {
	Type      uint32
	_         uint32
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type inputter struct{}

var _ platform.Inputter = (*inputter)(nil)

func (inputter) CursorPos() (int, int, error) {
	var p point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return 0, 0, err
	}
	return int(p.X), int(p.Y), nil
}

func (inputter) MoveMouse(x, y int) error {
	ret, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))
	if ret == 0 {
		return err
	}
	return nil
}

// Click positions the cursor and issues count left button press/release
// pairs via SendInput.
func (in inputter) Click(x, y, count int) error {
	if err := in.MoveMouse(x, y); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		events := []mouseInput{
			{Type: inputMouse, Flags: mouseEventfLeftDown},
			{Type: inputMouse, Flags: mouseEventfLeftUp},
		}
		ret, _, err := procSendInput.Call(
			uintptr(len(events)),
			uintptr(unsafe.Pointer(&events[0])),
			unsafe.Sizeof(events[0]),
		)
		if ret != uintptr(len(events)) {
			return err
		}
	}
	return nil
}
