package storage

import (
	"tcm/internal/config"
)

// Preferences are the UI settings kept between runs
type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

// DefaultPreferences is used when nothing has been saved yet
func DefaultPreferences() Preferences {
	return Preferences{DarkMode: false}
}

// Storage persists and loads preferences.
type Storage interface {
	Load() (Preferences, error)
	Save(p Preferences) error
}

// JSONStorage stores preferences in a JSON file under the configured preferences path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's preferences path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Path is the file the preferences live in
func (s *JSONStorage) Path() string {
	return s.cfg.GetPreferencesPath()
}
