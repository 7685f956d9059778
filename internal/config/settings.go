package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadLocation = "download_location"
	KeyLanguage         = "app_language"
)

// Default values
const (
	DefaultLanguage = "system"
)

// Settings manages user preferences stored in the Fyne app preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadLocation returns the configured download location.
// On first use the platform Downloads directory is stored and returned.
func (s *Settings) GetDownloadLocation() string {
	dir := s.app.Preferences().String(KeyDownloadLocation)
	if dir == "" {
		defaultDir := DefaultDownloadLocation()
		s.SetDownloadLocation(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadLocation sets the download location
func (s *Settings) SetDownloadLocation(dir string) error {
	s.app.Preferences().SetString(KeyDownloadLocation, dir)
	return nil
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// DefaultDownloadLocation returns the platform Downloads directory, or the
// working directory when the home directory is unknown
func DefaultDownloadLocation() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "."
	}
	return dir
}
