//go:build windows

package capture

// Windows grabber using per-frame GDI allocations. Each Grab creates a
// temporary top-down 32-bit DIB, BitBlt's the region into it, copies the
// BGRA bytes out and frees the GDI handles. The DIB already holds BGRA, so
// no channel shuffling is needed; only the undefined alpha is forced
// opaque.

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 constants
const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	srccopy           = 0x00CC0020
	dibRGBColors      = 0
	biRGB             = 0
)

// Win32 DLL procs (lazy loaded)
var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procCreateCompatibleDC  = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC            = gdi32.NewProc("DeleteDC")
	procSelectObject        = gdi32.NewProc("SelectObject")
	procBitBlt              = gdi32.NewProc("BitBlt")
	procCreateDIBSection    = gdi32.NewProc("CreateDIBSection")
	procDeleteObject        = gdi32.NewProc("DeleteObject")
)

// BITMAPINFO structures (Win32 layout).
type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte // one RGBQUAD placeholder (unused for 32-bit)
}

type winRect struct {
	Left, Top, Right, Bottom int32
}

// enumMonitorsCallback appends each display rectangle (virtual-screen
// coordinates) to the slice passed through lparam. Created once; Windows
// callback slots are a finite process-wide resource.
var enumMonitorsCallback = syscall.NewCallback(func(hMonitor, hdc uintptr, lprc *winRect, lparam uintptr) uintptr {
	out := (*[]Region)(unsafe.Pointer(lparam))
	*out = append(*out, Region{
		Left:   int(lprc.Left),
		Top:    int(lprc.Top),
		Width:  int(lprc.Right - lprc.Left),
		Height: int(lprc.Bottom - lprc.Top),
	})
	return 1 // continue enumeration
})

type gdiGrabber struct{}

// NewGrabber returns the platform grabber. The returned value must be
// constructed and used on a single goroutine.
func NewGrabber() (Grabber, error) { return &gdiGrabber{}, nil }

func (g *gdiGrabber) Regions() ([]Region, error) {
	virtual := Region{
		Left:   int(getSystemMetric(smXVirtualScreen)),
		Top:    int(getSystemMetric(smYVirtualScreen)),
		Width:  int(getSystemMetric(smCxVirtualScreen)),
		Height: int(getSystemMetric(smCyVirtualScreen)),
	}
	if virtual.Width <= 0 || virtual.Height <= 0 {
		return nil, fmt.Errorf("invalid virtual screen %s", virtual)
	}
	displays := make([]Region, 0, 4)
	ok, _, callErr := procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, uintptr(unsafe.Pointer(&displays)))
	if ok == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %v", callErr)
	}
	return append([]Region{virtual}, displays...), nil
}

func (g *gdiGrabber) Grab(r Region) ([]byte, error) {
	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid region %s", r)
	}

	// Acquire screen DC.
	screenDC, _, callErr := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC failed: %v", callErr)
	}
	defer procReleaseDC.Call(0, screenDC)

	// Create compatible memory DC.
	memDC, _, callErr := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed: %v", callErr)
	}
	defer procDeleteDC.Call(memDC)

	// Set up BITMAPINFO for a top-down 32-bit DIB.
	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h) // top-down
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRGB
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bitsPtr unsafe.Pointer
	bmp, _, callErr := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bitsPtr)), 0, 0)
	if bmp == 0 {
		return nil, fmt.Errorf("CreateDIBSection failed: %v", callErr)
	}
	defer procDeleteObject.Call(bmp)

	// Select bitmap into DC.
	prev, _, callErr := procSelectObject.Call(memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) { // failure or GDI_ERROR
		return nil, fmt.Errorf("SelectObject failed: %v", callErr)
	}

	// BitBlt the region into the memory DC.
	ok, _, callErr := procBitBlt.Call(memDC, 0, 0, uintptr(w), uintptr(h), screenDC, uintptr(r.Left), uintptr(r.Top), srccopy)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt failed for %s: %v", r, callErr)
	}

	// Copy out; the DIB memory dies with the bitmap handle.
	n := w * h * 4
	src := unsafe.Slice((*byte)(bitsPtr), n)
	out := acquireStaging(n)
	copy(out, src)
	// Alpha from BitBlt is undefined; force opaque.
	for i := 3; i < n; i += 4 {
		out[i] = 0xFF
	}
	return out, nil
}

func getSystemMetric(idx int) int32 {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return int32(v)
}
