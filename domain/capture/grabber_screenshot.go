//go:build !windows

package capture

// Portable grabber built on the screenshot library. Region index 0 is the
// union of all active display bounds, mirroring the Windows virtual screen
// metrics; the library hands back RGBA, which is repacked to BGRA here.

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

type screenshotGrabber struct{}

// NewGrabber returns the platform grabber. The returned value must be
// constructed and used on a single goroutine.
func NewGrabber() (Grabber, error) { return &screenshotGrabber{}, nil }

func (g *screenshotGrabber) Regions() ([]Region, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays")
	}
	union := screenshot.GetDisplayBounds(0)
	displays := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		union = union.Union(b)
		displays = append(displays, regionFromRect(b))
	}
	return append([]Region{regionFromRect(union)}, displays...), nil
}

func (g *screenshotGrabber) Grab(r Region) ([]byte, error) {
	img, err := screenshot.CaptureRect(image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height))
	if err != nil {
		return nil, err
	}
	return packBGRA(img, r.Width, r.Height), nil
}

// packBGRA repacks RGBA pixels into tightly packed BGRA with opaque alpha.
func packBGRA(img *image.RGBA, w, h int) []byte {
	out := acquireStaging(w * h * 4)
	di := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			out[di+0] = row[x+2]
			out[di+1] = row[x+1]
			out[di+2] = row[x+0]
			out[di+3] = 0xFF
			di += 4
		}
	}
	return out
}

func regionFromRect(r image.Rectangle) Region {
	return Region{Left: r.Min.X, Top: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
