package capture

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a rectangle in virtual-desktop coordinates. Width and Height
// are always positive. Left and Top may be negative in regions reported by
// a grabber (displays placed left of or above the primary one); regions
// supplied by users must not be.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.Left, r.Top, r.Width, r.Height)
}

// ValidateROI checks a user-supplied region of interest: both dimensions
// positive, origin non-negative.
func (r Region) ValidateROI() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: roi %s needs positive width and height", ErrConfig, r)
	}
	if r.Left < 0 || r.Top < 0 {
		return fmt.Errorf("%w: roi %s needs a non-negative origin", ErrConfig, r)
	}
	return nil
}

// ParseRegion parses "left,top,width,height" into a validated ROI.
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("%w: roi %q must be left,top,width,height", ErrConfig, s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("%w: roi %q has a non-integer field %q", ErrConfig, s, p)
		}
		vals[i] = v
	}
	r := Region{Left: vals[0], Top: vals[1], Width: vals[2], Height: vals[3]}
	if err := r.ValidateROI(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// resolveRegion picks the rectangle a worker run will capture. An explicit
// ROI wins. Otherwise monitor indexes the grabber's region list, where
// index 0 is the full virtual desktop and 1..N are physical displays.
func resolveRegion(g Grabber, monitor int, roi *Region) (Region, error) {
	if roi != nil {
		return *roi, nil
	}
	regions, err := g.Regions()
	if err != nil {
		return Region{}, fmt.Errorf("%w: %v", ErrRegionResolve, err)
	}
	if len(regions) == 0 {
		return Region{}, fmt.Errorf("%w: grabber reported no regions", ErrRegionResolve)
	}
	if monitor < 0 || monitor >= len(regions) {
		return Region{}, fmt.Errorf("%w: monitor %d outside [0,%d]", ErrRegionResolve, monitor, len(regions)-1)
	}
	return regions[monitor], nil
}
