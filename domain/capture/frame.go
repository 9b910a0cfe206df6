package capture

import (
	"fmt"
	"image"
	"strings"
)

// PixelFormat identifies the channel layout of a Frame's pixel data.
type PixelFormat int

const (
	// FormatBGRA is the native acquisition layout: blue, green, red, alpha.
	FormatBGRA PixelFormat = iota
	// FormatBGR drops the alpha channel.
	FormatBGR
	// FormatRGB drops alpha and reverses the channel order.
	FormatRGB
	// FormatGray is single-channel luminance.
	FormatGray
)

// Channels returns the bytes per pixel for the format, or 0 when the format
// is unknown.
func (f PixelFormat) Channels() int {
	switch f {
	case FormatBGRA:
		return 4
	case FormatBGR, FormatRGB:
		return 3
	case FormatGray:
		return 1
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA:
		return "BGRA"
	case FormatBGR:
		return "BGR"
	case FormatRGB:
		return "RGB"
	case FormatGray:
		return "GRAY"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// ParsePixelFormat maps a case-insensitive format name ("bgra", "RGB", ...)
// to its PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BGRA":
		return FormatBGRA, nil
	case "BGR":
		return FormatBGR, nil
	case "RGB":
		return FormatRGB, nil
	case "GRAY":
		return FormatGray, nil
	default:
		return 0, fmt.Errorf("%w: unknown pixel format %q", ErrConfig, s)
	}
}

// Frame is one captured image. Pix holds row-major samples with Stride
// bytes per row and Format.Channels() bytes per pixel. A published frame is
// shared between the worker and any number of readers and must be treated
// as read-only.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

// Image materializes the frame as a stdlib image for rendering or encoding.
// The result owns a copy of the pixels, so it stays valid however long the
// caller keeps it.
func (f *Frame) Image() image.Image {
	if f == nil || len(f.Pix) == 0 {
		return nil
	}
	if f.Format == FormatGray {
		dst := image.NewGray(f.Bounds())
		for y := 0; y < f.Height; y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+f.Width], f.Pix[y*f.Stride:])
		}
		return dst
	}
	dst := image.NewRGBA(f.Bounds())
	ch := f.Format.Channels()
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < f.Width; x++ {
			si, di := x*ch, x*4
			switch f.Format {
			case FormatBGRA:
				row[di+0] = src[si+2]
				row[di+1] = src[si+1]
				row[di+2] = src[si+0]
				row[di+3] = src[si+3]
			case FormatBGR:
				row[di+0] = src[si+2]
				row[di+1] = src[si+1]
				row[di+2] = src[si+0]
				row[di+3] = 0xFF
			case FormatRGB:
				row[di+0] = src[si+0]
				row[di+1] = src[si+1]
				row[di+2] = src[si+2]
				row[di+3] = 0xFF
			}
		}
	}
	return dst
}
