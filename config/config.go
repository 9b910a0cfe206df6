package config

import (
	"encoding/json"
	"os"

	"github.com/soocke/screenfeed-go/domain/capture"
)

// Config holds runtime configuration for the capture service and driver.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Capture parameters
	Monitor     int    `json:"monitor"`
	PixelFormat string `json:"pixel_format"`
	TargetFPS   int    `json:"target_fps"`
	Preview     bool   `json:"preview"`

	// Region of interest; active when both dimensions are positive.
	ROILeft   int `json:"roi_left"`
	ROITop    int `json:"roi_top"`
	ROIWidth  int `json:"roi_width"`
	ROIHeight int `json:"roi_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:       false,
		Monitor:     0,
		PixelFormat: "BGRA",
		TargetFPS:   30,
		Preview:     false,
		ROILeft:     0,
		ROITop:      0,
		ROIWidth:    0,
		ROIHeight:   0,
	}
}

// Validate clamps benign values to safe ranges and rejects semantic errors.
// The monitor index is deliberately left alone; it is checked against the
// actual display list when capture starts.
func (c *Config) Validate() error {
	if c.TargetFPS < 1 {
		c.TargetFPS = 1
	}
	if _, err := capture.ParsePixelFormat(c.PixelFormat); err != nil {
		return err
	}
	if roi := c.ROI(); roi != nil {
		if err := roi.ValidateROI(); err != nil {
			return err
		}
	}
	return nil
}

// ROI returns the configured region of interest, or nil when unset. A
// region with only one positive dimension counts as set and fails
// validation rather than being silently dropped.
func (c *Config) ROI() *capture.Region {
	if c.ROIWidth == 0 && c.ROIHeight == 0 && c.ROILeft == 0 && c.ROITop == 0 {
		return nil
	}
	return &capture.Region{Left: c.ROILeft, Top: c.ROITop, Width: c.ROIWidth, Height: c.ROIHeight}
}

// SetROI stores r as the active region of interest; nil clears it.
func (c *Config) SetROI(r *capture.Region) {
	if r == nil {
		c.ROILeft, c.ROITop, c.ROIWidth, c.ROIHeight = 0, 0, 0, 0
		return
	}
	c.ROILeft, c.ROITop, c.ROIWidth, c.ROIHeight = r.Left, r.Top, r.Width, r.Height
}

// CaptureOptions assembles capture service options from the configuration.
func (c *Config) CaptureOptions() (capture.Options, error) {
	format, err := capture.ParsePixelFormat(c.PixelFormat)
	if err != nil {
		return capture.Options{}, err
	}
	return capture.Options{
		Monitor:   c.Monitor,
		ROI:       c.ROI(),
		Format:    format,
		TargetFPS: c.TargetFPS,
		Preview:   c.Preview,
	}, nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON or validation
// error it returns the partially applied config with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
