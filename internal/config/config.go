package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "mte.yaml"

type Config struct {
	// New-project canvas
	FPS    int `yaml:"fps"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	AutosaveDir string `yaml:"autosave_dir"`
	AutosaveKey string `yaml:"autosave_key"`

	// Playback
	PlayAcrossSlides bool    `yaml:"play_across_slides"`
	Speed            float64 `yaml:"speed"`
	DriftTolerance   float64 `yaml:"drift_tolerance"`
	FrameRate        int     `yaml:"frame_rate"`

	// Lesson import reference canvas
	ReferenceWidth  float64 `yaml:"reference_width"`
	ReferenceHeight float64 `yaml:"reference_height"`

	// Gesture conversion
	PxPerSec  float64 `yaml:"px_per_sec"`
	RowHeight float64 `yaml:"row_height"`

	// Deck import
	Workers int    `yaml:"workers"`
	DPI     int    `yaml:"dpi"`
	Focus   string `yaml:"focus"`
}

func Default() Config {
	return Config{
		FPS:              30,
		Width:            1920,
		Height:           1080,
		AutosaveDir:      ".mte",
		AutosaveKey:      "mte_autosave_v3",
		PlayAcrossSlides: true,
		Speed:            1,
		DriftTolerance:   0.2,
		FrameRate:        60,
		ReferenceWidth:   1920,
		ReferenceHeight:  1080,
		PxPerSec:         40,
		RowHeight:        40,
		Workers:          4,
		DPI:              150,
		Focus:            "none",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides fields from MTE_AUTOSAVE_DIR and MTE_SPEED.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MTE_AUTOSAVE_DIR"); v != "" {
		c.AutosaveDir = v
	}
	if v := os.Getenv("MTE_SPEED"); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MTE_SPEED: %w", err)
		}
		c.Speed = speed
	}
	return nil
}

func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.AutosaveKey == "" {
		return errors.New("autosave_key is empty")
	}
	if c.Speed < 0.25 || c.Speed > 3 {
		return fmt.Errorf("speed must be within [0.25, 3], got %g", c.Speed)
	}
	if c.DriftTolerance < 0 {
		return fmt.Errorf("drift_tolerance must be >= 0")
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be > 0")
	}
	if c.ReferenceWidth <= 0 || c.ReferenceHeight <= 0 {
		return fmt.Errorf("reference canvas must be positive")
	}
	if c.PxPerSec <= 0 || c.RowHeight <= 0 {
		return fmt.Errorf("px_per_sec and row_height must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be > 0")
	}
	switch c.Focus {
	case "none", "contrast":
	default:
		return fmt.Errorf("unknown focus detector %q", c.Focus)
	}
	return nil
}
