//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"uidriver/internal/platform"
)

func init() {
	platform.NewProviderFunc = newProvider
}

func newProvider() (*platform.Provider, error) {
	// Ignore the error: S_FALSE means the thread is already initialized.
	ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, fmt.Errorf("create UI Automation instance: %w", err)
	}
	auto := (*iUIAutomation)(unsafe.Pointer(unk))

	return &platform.Provider{
		Desktop:  &desktop{auto: auto},
		Inputter: inputter{},
	}, nil
}
