package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg != Default() {
		t.Fatalf("missing file: %+v, %v", cfg, err)
	}

	path := filepath.Join(dir, "mte.yaml")
	if err := os.WriteFile(path, []byte("speed: 1.5\nplay_across_slides: false\nwidth: 1280\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speed != 1.5 || cfg.PlayAcrossSlides || cfg.Width != 1280 || cfg.Height != 1080 {
		t.Errorf("unexpected config %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("speed: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Expected error for malformed YAML")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mte.yaml")
	cfg := Default()
	cfg.Focus = "contrast"
	cfg.FrameRate = 30
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil || got != cfg {
		t.Errorf("got %+v, %v", got, err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MTE_AUTOSAVE_DIR", "/tmp/autosave")
	t.Setenv("MTE_SPEED", "2")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.AutosaveDir != "/tmp/autosave" || cfg.Speed != 2 {
		t.Errorf("env not applied: %+v", cfg)
	}

	t.Setenv("MTE_SPEED", "fast")
	if err := cfg.ApplyEnv(); err == nil {
		t.Errorf("Expected error for non-numeric speed")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"empty key", func(c *Config) { c.AutosaveKey = "" }},
		{"speed too low", func(c *Config) { c.Speed = 0.1 }},
		{"speed too high", func(c *Config) { c.Speed = 4 }},
		{"negative drift", func(c *Config) { c.DriftTolerance = -1 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"zero reference", func(c *Config) { c.ReferenceHeight = 0 }},
		{"zero px per sec", func(c *Config) { c.PxPerSec = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
		{"unknown focus", func(c *Config) { c.Focus = "ocr" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}
