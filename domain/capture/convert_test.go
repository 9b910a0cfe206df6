package capture

import (
	"bytes"
	"errors"
	"testing"
)

func TestConvertBGRA_IdentityAdoptsBuffer(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	f, err := convertBGRA(raw, 2, 1, FormatBGRA)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if &f.Pix[0] != &raw[0] {
		t.Fatalf("BGRA path must adopt the raw buffer, not copy it")
	}
	if f.Width != 2 || f.Height != 1 || f.Stride != 8 || f.Format != FormatBGRA {
		t.Fatalf("frame shape: %+v", f)
	}
}

func TestConvertBGRA_BGRDropsAlpha(t *testing.T) {
	raw := []byte{10, 20, 30, 255, 40, 50, 60, 128}
	f, err := convertBGRA(raw, 2, 1, FormatBGR)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{10, 20, 30, 40, 50, 60}
	if !bytes.Equal(f.Pix, want) {
		t.Fatalf("got %v want %v", f.Pix, want)
	}
	if f.Stride != 6 {
		t.Fatalf("stride: got %d want 6", f.Stride)
	}
}

func TestConvertBGRA_RGBReversesChannels(t *testing.T) {
	raw := []byte{10, 20, 30, 255, 0, 128, 255, 255}
	f, err := convertBGRA(raw, 2, 1, FormatRGB)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{30, 20, 10, 255, 128, 0}
	if !bytes.Equal(f.Pix, want) {
		t.Fatalf("got %v want %v", f.Pix, want)
	}
}

func TestConvertBGRA_GrayFlatInput(t *testing.T) {
	// The luminance weights sum to 1, so flat gray input must survive
	// within rounding distance.
	raw := bytes.Repeat([]byte{128, 128, 128, 255}, 4)
	f, err := convertBGRA(raw, 2, 2, FormatGray)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if f.Stride != 2 || len(f.Pix) != 4 {
		t.Fatalf("gray shape: stride=%d len=%d", f.Stride, len(f.Pix))
	}
	for i, v := range f.Pix {
		if v < 127 || v > 129 {
			t.Fatalf("pixel %d: got %d, want 128 within 1", i, v)
		}
	}
}

func TestConvertBGRA_GrayWeights(t *testing.T) {
	// 0.114*10 + 0.587*200 + 0.299*100 = 148.44, rounds to 148
	f, err := convertBGRA([]byte{10, 200, 100, 255}, 1, 1, FormatGray)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if f.Pix[0] != 148 {
		t.Fatalf("weighted luminance: got %d want 148", f.Pix[0])
	}

	if f, _ := convertBGRA([]byte{0, 0, 0, 255}, 1, 1, FormatGray); f.Pix[0] != 0 {
		t.Fatalf("black: got %d want 0", f.Pix[0])
	}
	if f, _ := convertBGRA([]byte{255, 255, 255, 255}, 1, 1, FormatGray); f.Pix[0] != 255 {
		t.Fatalf("white: got %d want 255", f.Pix[0])
	}
}

func TestConvertBGRA_BufferSizeMismatch(t *testing.T) {
	if _, err := convertBGRA(make([]byte, 7), 2, 1, FormatBGRA); !errors.Is(err, ErrGrab) {
		t.Fatalf("short buffer: want ErrGrab, got %v", err)
	}
	if _, err := convertBGRA(make([]byte, 16), 1, 1, FormatGray); !errors.Is(err, ErrGrab) {
		t.Fatalf("oversized buffer: want ErrGrab, got %v", err)
	}
}
