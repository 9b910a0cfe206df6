package capture

import "fmt"

// convertBGRA maps a raw BGRA buffer (w*h*4 bytes) to a Frame in the
// requested format. For FormatBGRA the buffer is adopted without copying;
// for every other format a fresh buffer is allocated, so the caller may
// recycle raw afterwards.
func convertBGRA(raw []byte, w, h int, format PixelFormat) (*Frame, error) {
	if len(raw) != w*h*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d, want %d", ErrGrab, len(raw), w, h, w*h*4)
	}
	switch format {
	case FormatBGRA:
		return &Frame{Pix: raw, Width: w, Height: h, Stride: w * 4, Format: FormatBGRA}, nil
	case FormatBGR:
		out := make([]byte, w*h*3)
		di := 0
		for si := 0; si < len(raw); si += 4 {
			out[di+0] = raw[si+0]
			out[di+1] = raw[si+1]
			out[di+2] = raw[si+2]
			di += 3
		}
		return &Frame{Pix: out, Width: w, Height: h, Stride: w * 3, Format: FormatBGR}, nil
	case FormatRGB:
		out := make([]byte, w*h*3)
		di := 0
		for si := 0; si < len(raw); si += 4 {
			out[di+0] = raw[si+2]
			out[di+1] = raw[si+1]
			out[di+2] = raw[si+0]
			di += 3
		}
		return &Frame{Pix: out, Width: w, Height: h, Stride: w * 3, Format: FormatRGB}, nil
	case FormatGray:
		out := make([]byte, w*h)
		di := 0
		for si := 0; si < len(raw); si += 4 {
			y := 0.114*float32(raw[si+0]) + 0.587*float32(raw[si+1]) + 0.299*float32(raw[si+2])
			// round half up; 255.5 still truncates to 255
			out[di] = uint8(y + 0.5)
			di++
		}
		return &Frame{Pix: out, Width: w, Height: h, Stride: w, Format: FormatGray}, nil
	default:
		return nil, fmt.Errorf("%w: unknown pixel format %d", ErrConfig, int(format))
	}
}
