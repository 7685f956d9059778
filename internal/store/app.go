package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// AppTitle is the window title prefix
const AppTitle = "YT-DLP GUI"

// AppStore tracks versions and the settings panel
type AppStore struct {
	*Writable[model.AppState]
	versions VersionProvider
	logger   zerolog.Logger
}

// NewAppStore creates an AppStore in the loading state
func NewAppStore(versions VersionProvider) *AppStore {
	return &AppStore{
		Writable: NewWritable(model.AppState{Loading: true}),
		versions: versions,
		logger:   logging.Get("store.app"),
	}
}

// LoadVersion queries the yt-dlp and application versions
func (s *AppStore) LoadVersion(ctx context.Context) {
	s.Update(func(st model.AppState) model.AppState {
		st.Loading = true
		return st
	})

	info, err := s.versions.YtdlpVersion(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to get yt-dlp version")
		s.Set(model.AppState{})
		return
	}

	s.Set(model.AppState{
		YtdlpVersion: info.Version,
		YtdlpSource:  info.Source,
		AppVersion:   s.versions.AppVersion(),
	})
}

// ToggleSettings opens or closes the settings panel
func (s *AppStore) ToggleSettings() {
	s.Update(func(st model.AppState) model.AppState {
		st.SettingsOpen = !st.SettingsOpen
		return st
	})
}

// OpenSettings opens the settings panel
func (s *AppStore) OpenSettings() {
	s.Update(func(st model.AppState) model.AppState {
		st.SettingsOpen = true
		return st
	})
}

// CloseSettings closes the settings panel
func (s *AppStore) CloseSettings() {
	s.Update(func(st model.AppState) model.AppState {
		st.SettingsOpen = false
		return st
	})
}

// WindowTitle formats the window title for a state
func WindowTitle(st model.AppState) string {
	if st.YtdlpVersion == "" {
		return AppTitle
	}
	return fmt.Sprintf("%s - %s (%s) | App: %s", AppTitle, st.YtdlpVersion, st.YtdlpSource.Label(), st.AppVersion)
}
