package capture

import (
	"errors"
	"testing"
)

func TestParseRegion_Valid(t *testing.T) {
	r, err := ParseRegion("10, 20, 300, 200")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := Region{Left: 10, Top: 20, Width: 300, Height: 200}
	if r != want {
		t.Fatalf("got %+v want %+v", r, want)
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	cases := []string{
		"0,0,100",      // missing field
		"0,0,100,0",    // zero height
		"0,0,0,100",    // zero width
		"-5,0,100,100", // negative origin
		"0,-2,100,100", // negative origin
		"0,0,100,-1",   // negative height
		"a,0,100,100",  // non-integer field
		"",             // empty
	}
	for _, in := range cases {
		if _, err := ParseRegion(in); !errors.Is(err, ErrConfig) {
			t.Fatalf("ParseRegion(%q): want ErrConfig, got %v", in, err)
		}
	}
}

func TestValidateROI(t *testing.T) {
	if err := (Region{Left: 0, Top: 0, Width: 1, Height: 1}).ValidateROI(); err != nil {
		t.Fatalf("minimal roi rejected: %v", err)
	}
	if err := (Region{Left: -1, Top: 0, Width: 1, Height: 1}).ValidateROI(); !errors.Is(err, ErrConfig) {
		t.Fatalf("negative origin accepted")
	}
	if err := (Region{Width: 0, Height: 1}).ValidateROI(); !errors.Is(err, ErrConfig) {
		t.Fatalf("zero width accepted")
	}
}

func TestResolveRegion(t *testing.T) {
	g := &fakeGrabber{regions: testRegions()}

	roi := &Region{Left: 5, Top: 5, Width: 10, Height: 10}
	got, err := resolveRegion(g, 2, roi)
	if err != nil || got != *roi {
		t.Fatalf("explicit roi not used verbatim: got %+v err %v", got, err)
	}

	for idx, want := range testRegions() {
		got, err := resolveRegion(g, idx, nil)
		if err != nil || got != want {
			t.Fatalf("monitor %d: got %+v err %v, want %+v", idx, got, err, want)
		}
	}

	if _, err := resolveRegion(g, len(g.regions), nil); !errors.Is(err, ErrRegionResolve) {
		t.Fatalf("index past the end: want ErrRegionResolve, got %v", err)
	}
	if _, err := resolveRegion(g, -1, nil); !errors.Is(err, ErrRegionResolve) {
		t.Fatalf("negative index: want ErrRegionResolve, got %v", err)
	}
	if _, err := resolveRegion(&fakeGrabber{}, 0, nil); !errors.Is(err, ErrRegionResolve) {
		t.Fatalf("empty region list: want ErrRegionResolve, got %v", err)
	}
	broken := &fakeGrabber{regionsErr: errors.New("enumeration failed")}
	if _, err := resolveRegion(broken, 0, nil); !errors.Is(err, ErrRegionResolve) {
		t.Fatalf("regions error: want ErrRegionResolve, got %v", err)
	}
}
