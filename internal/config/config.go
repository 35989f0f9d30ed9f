package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the editor config file, relative to the process working directory.
const DefaultPath = "config/editor.yaml"

// Prefs holds editor preferences for the generation sidebar. Persisted across runs.
type Prefs struct {
	Service  ServicePrefs  `yaml:"service"`
	Panels   PanelPrefs    `yaml:"panels"`
	Points   PointPrefs    `yaml:"points"`
	Mesh     MeshPrefs     `yaml:"mesh"`
	Log      LogPrefs      `yaml:"log"`
	Download DownloadPrefs `yaml:"download"`
	View     ViewPrefs     `yaml:"view"`
}

// ServicePrefs locates the inference/processing service and fixes request payload defaults.
// Timeout 0 means requests wait indefinitely.
type ServicePrefs struct {
	BaseURL             string        `yaml:"base_url"`
	Timeout             time.Duration `yaml:"timeout"`
	FileFormat          string        `yaml:"file_format"`
	NPoints             int           `yaml:"n_points"`
	SmoothingIterations int           `yaml:"smoothing_iterations,omitempty"`
}

// PanelPrefs controls panel behaviour.
// AlertOnFailure: when false, upload/upsampling server and transport failures are only logged.
// ResetOnValidationAbort: when true, the busy button returns to idle after a validation alert.
type PanelPrefs struct {
	AlertOnFailure         bool   `yaml:"alert_on_failure"`
	ResetOnValidationAbort bool   `yaml:"reset_on_validation_abort"`
	DefaultSmoothing       string `yaml:"default_smoothing"`
	PreviewMax             int    `yaml:"preview_max"`
	Locale                 string `yaml:"locale"`
}

// PointStyle is the render style of a generated point cloud. Color is 0xRRGGBB.
type PointStyle struct {
	Size            float32 `yaml:"size"`
	Color           uint32  `yaml:"color"`
	SizeAttenuation bool    `yaml:"size_attenuation"`
}

type PointPrefs struct {
	Upload   PointStyle `yaml:"upload"`
	Upsample PointStyle `yaml:"upsample"`
}

type MeshPrefs struct {
	Color uint32 `yaml:"color"`
}

type LogPrefs struct {
	Path string `yaml:"path"`
}

type DownloadPrefs struct {
	Dir string `yaml:"dir"`
}

// ViewPrefs are viewport overlays (debug counters off, grid on by default).
type ViewPrefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	GridVisible  bool `yaml:"grid_visible"`
}

// Default returns the preferences matching the original sidebar (local service, 8192 points, laplacian).
func Default() Prefs {
	return Prefs{
		Service: ServicePrefs{
			BaseURL:    "http://localhost:8000",
			FileFormat: "ply",
			NPoints:    8192,
		},
		Panels: PanelPrefs{
			AlertOnFailure:         false,
			ResetOnValidationAbort: true,
			DefaultSmoothing:       "laplacian",
			PreviewMax:             200,
			Locale:                 "en",
		},
		Points: PointPrefs{
			Upload:   PointStyle{Size: 0.01, Color: 0x00ff00, SizeAttenuation: true},
			Upsample: PointStyle{Size: 0.03, Color: 0x0000ff, SizeAttenuation: true},
		},
		Mesh:     MeshPrefs{Color: 0xb13e3e},
		Log:      LogPrefs{Path: "logs/terminal.txt"},
		Download: DownloadPrefs{Dir: "downloads"},
		View:     ViewPrefs{GridVisible: true},
	}
}

// Load reads preferences from path. A missing file yields Default() and no error.
// Fields absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	p.Service.BaseURL = strings.TrimSuffix(p.Service.BaseURL, "/")
	return p, nil
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
