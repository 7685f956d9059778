package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileStore keeps user preferences in a TOML file. It is used by the
// command line and web shells, which run without a Fyne app.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPreferencesPath returns the preferences file path under the XDG config directory
func DefaultPreferencesPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, PreferencesFileName)
}

// NewFileStore creates a store backed by path, or DefaultPreferencesPath when empty
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPreferencesPath()
	}
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// GetDownloadLocation returns the stored download location.
// On first use the platform Downloads directory is stored and returned.
func (s *FileStore) GetDownloadLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.load()
	if err == nil {
		if dir := k.String(KeyDownloadLocation); dir != "" {
			return dir
		}
	}

	dir := DefaultDownloadLocation()
	_ = s.write(KeyDownloadLocation, dir)
	return dir
}

// SetDownloadLocation stores the download location
func (s *FileStore) SetDownloadLocation(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(KeyDownloadLocation, dir)
}

func (s *FileStore) load() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return k, nil
		}
		return nil, fmt.Errorf("failed to stat preferences: %w", err)
	}
	if err := k.Load(file.Provider(s.path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load preferences from %s: %w", s.path, err)
	}
	return k, nil
}

func (s *FileStore) write(key, value string) error {
	k, err := s.load()
	if err != nil {
		// unreadable files are replaced
		k = koanf.New(".")
	}
	if err := k.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	data, err := k.Marshal(toml.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
