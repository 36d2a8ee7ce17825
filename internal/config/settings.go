package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Settings holds all configuration options.
type Settings struct {
	// BaseURL, when set, is used to resolve relative job URLs.
	BaseURL string `json:"base_url"`

	// Folder is the output directory; empty means the current working
	// directory. Created (with parents) before the first job starts.
	Folder string `json:"folder"`

	// ParseSelector is the path expression yielding the download URL from
	// each input entry. Empty means the entry itself is the URL.
	ParseSelector string `json:"parse_selector"`

	// NameSelector is the path expression yielding a display name from
	// each input entry, feeding the {selector} placeholder.
	NameSelector string `json:"name_selector"`

	// NamePattern is the filename template, e.g. "{name}_{index}".
	NamePattern string `json:"name_pattern"`

	// MaxSizeInMb is the ceiling on a job's declared content length.
	// Responses without a Content-Length header are let through.
	MaxSizeInMb float64 `json:"max_size_in_mb"`

	// Concurrency bounds how many downloads are in flight at once.
	Concurrency int `json:"concurrency"`
}

// DefaultSettings returns settings with default values: current directory,
// "{name}" pattern, 1 MB size limit, one download at a time.
func DefaultSettings() *Settings {
	return &Settings{
		Folder:      "",
		NamePattern: "{name}",
		MaxSizeInMb: 1,
		Concurrency: 1,
	}
}

// Validate reports configuration values no run can work with. These fail the
// whole run rather than individual jobs.
func (s *Settings) Validate() error {
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	if s.MaxSizeInMb < 0 {
		return fmt.Errorf("max size must not be negative, got %g", s.MaxSizeInMb)
	}
	return nil
}

// DefaultConfigPath returns the settings file location under the user's XDG
// config directory.
func DefaultConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("batchdl", "settings.json"))
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
