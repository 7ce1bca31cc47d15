//go:build windows

package clipboard

import (
	"fmt"
	"image"
	"syscall"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	setClipboardData = user32.NewProc("SetClipboardData")
	globalAlloc      = kernel32.NewProc("GlobalAlloc")
	globalFree       = kernel32.NewProc("GlobalFree")
	globalLock       = kernel32.NewProc("GlobalLock")
	globalUnlock     = kernel32.NewProc("GlobalUnlock")
)

const (
	cfDIB        = 8
	gmemMoveable = 0x0002
)

func copyImage(img image.Image) error {
	dib, err := encodeDIB(img)
	if err != nil {
		return err
	}

	r, _, _ := openClipboard.Call(0)
	if r == 0 {
		return fmt.Errorf("failed to open clipboard")
	}
	defer closeClipboard.Call()

	if r, _, _ := emptyClipboard.Call(); r == 0 {
		return fmt.Errorf("failed to empty clipboard")
	}

	handle, _, _ := globalAlloc.Call(gmemMoveable, uintptr(len(dib)))
	if handle == 0 {
		return fmt.Errorf("failed to allocate clipboard memory")
	}

	ptr, _, _ := globalLock.Call(handle)
	if ptr == 0 {
		globalFree.Call(handle)
		return fmt.Errorf("failed to lock clipboard memory")
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(dib))
	copy(dst, dib)
	globalUnlock.Call(handle)

	// the clipboard owns the handle after SetClipboardData succeeds
	if r, _, _ := setClipboardData.Call(cfDIB, handle); r == 0 {
		globalFree.Call(handle)
		return fmt.Errorf("failed to set clipboard data")
	}
	return nil
}
