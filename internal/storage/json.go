package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads saved preferences. A missing file yields the defaults.
func (s *JSONStorage) Load() (Preferences, error) {
	prefs := DefaultPreferences()
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences file: %w", err)
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("parse preferences: %w", err)
	}
	return prefs, nil
}

// Save writes preferences, creating the directory if needed.
func (s *JSONStorage) Save(p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// ToggleDarkMode flips and saves the dark mode flag, returning the new value
func ToggleDarkMode(s Storage) (bool, error) {
	p, err := s.Load()
	if err != nil {
		return false, err
	}
	p.DarkMode = !p.DarkMode
	return p.DarkMode, s.Save(p)
}
