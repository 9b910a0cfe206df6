package app

import (
	"testing"

	"github.com/soocke/screenfeed-go/config"
	"github.com/soocke/screenfeed-go/domain/capture"
)

func TestSampleChecksum(t *testing.T) {
	pix := make([]byte, 3*4096)
	pix[0] = 1
	pix[4096] = 2
	pix[8192] = 3
	pix[100] = 99 // off-stride bytes are not sampled

	f := &capture.Frame{Pix: pix, Width: 64, Height: 48, Stride: 256, Format: capture.FormatBGRA}
	if got := sampleChecksum(f); got != 6 {
		t.Fatalf("expected checksum 6, got %d", got)
	}
}

func TestSampleChecksum_SmallFrame(t *testing.T) {
	f := &capture.Frame{Pix: []byte{7, 8, 9}, Width: 1, Height: 1, Stride: 3, Format: capture.FormatRGB}
	if got := sampleChecksum(f); got != 7 {
		t.Fatalf("expected only the first byte sampled, got %d", got)
	}
}

func TestSampleChecksum_Empty(t *testing.T) {
	if got := sampleChecksum(nil); got != 0 {
		t.Fatalf("nil frame should digest to 0, got %d", got)
	}
	if got := sampleChecksum(&capture.Frame{}); got != 0 {
		t.Fatalf("empty frame should digest to 0, got %d", got)
	}
}

func TestNewApp_InvalidFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PixelFormat = "YUV"

	if _, err := NewApp(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown pixel format")
	}
}

func TestNewApp_PreviewWiring(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := NewApp(cfg, nil)
	if err != nil {
		t.Fatalf("new app failed: %v", err)
	}
	if a.preview != nil {
		t.Fatalf("headless config should not build a preview window")
	}

	cfg.Preview = true
	a, err = NewApp(cfg, nil)
	if err != nil {
		t.Fatalf("new app with preview failed: %v", err)
	}
	if a.preview == nil {
		t.Fatalf("preview config should build a preview window")
	}
}
