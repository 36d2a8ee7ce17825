package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.NamePattern != "{name}" {
		t.Errorf("NamePattern = %q, want %q", s.NamePattern, "{name}")
	}
	if s.MaxSizeInMb != 1 {
		t.Errorf("MaxSizeInMb = %g, want 1", s.MaxSizeInMb)
	}
	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", s.Concurrency)
	}
	if s.Folder != "" {
		t.Errorf("Folder = %q, want empty", s.Folder)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"zero concurrency", func(s *Settings) { s.Concurrency = 0 }, true},
		{"negative concurrency", func(s *Settings) { s.Concurrency = -2 }, true},
		{"negative max size", func(s *Settings) { s.MaxSizeInMb = -1 }, true},
		{"zero max size allowed", func(s *Settings) { s.MaxSizeInMb = 0 }, false},
		{"high concurrency", func(s *Settings) { s.Concurrency = 64 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if s.NamePattern != "{name}" {
		t.Errorf("missing file should load defaults, got pattern %q", s.NamePattern)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	s := DefaultSettings()
	s.Folder = "/tmp/downloads"
	s.ParseSelector = "file.url"
	s.NamePattern = "{name}_{index}"
	s.MaxSizeInMb = 25
	s.Concurrency = 4

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if *loaded != *s {
		t.Errorf("Load() = %+v, want %+v", loaded, s)
	}
}
