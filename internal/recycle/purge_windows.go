//go:build windows

package recycle

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	// E_UNEXPECTED: the bin was already empty.
	hrAlreadyEmpty = 0x8000FFFF
)

// ShellPurger empties the recycle bin through the Windows Shell API.
type ShellPurger struct{}

// Purge empties the recycle bin for the given volume root ("C:\").
// An empty volume purges the bins of all drives.
func (ShellPurger) Purge(volume string) error {
	var rootPtr *uint16
	if volume != "" {
		root := volume
		if len(root) == 2 && root[1] == ':' {
			root += `\`
		}
		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			return fmt.Errorf("recycle bin root %q: %w", volume, err)
		}
		rootPtr = p
	}

	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, uintptr(unsafe.Pointer(rootPtr)), flags)

	if hr := uint32(ret); hr != 0 && hr != hrAlreadyEmpty {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}
