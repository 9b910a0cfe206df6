package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestScaleToFit_ReturnsOriginalWhenItFits(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))

	got := ScaleToFit(src, 200, 200)
	if got != image.Image(src) {
		t.Fatalf("expected the original image back, got %v", got.Bounds())
	}
}

func TestScaleToFit_PreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))

	got := ScaleToFit(src, 200, 200)
	b := got.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Fatalf("expected 200x50, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestScaleToFit_HeightBound(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 400))

	got := ScaleToFit(src, 200, 100)
	b := got.Bounds()
	if b.Dx() != 25 || b.Dy() != 100 {
		t.Fatalf("expected 25x100, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestScaleToFit_NeverCollapsesToZero(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 2))

	got := ScaleToFit(src, 10, 10)
	b := got.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		t.Fatalf("degenerate result %dx%d", b.Dx(), b.Dy())
	}
}

func TestScaleToFit_Nil(t *testing.T) {
	if got := ScaleToFit(nil, 10, 10); got != nil {
		t.Fatalf("expected nil for nil source, got %v", got)
	}
}

func TestEncodePNG_Roundtrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	src.Pix[0] = 0xFF

	data := EncodePNG(src)
	if len(data) == 0 {
		t.Fatalf("expected png bytes")
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", decoded.Bounds())
	}
}

func TestEncodePNG_Nil(t *testing.T) {
	if data := EncodePNG(nil); data != nil {
		t.Fatalf("expected nil for nil image, got %d bytes", len(data))
	}
}
