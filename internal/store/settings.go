package store

import "github.com/ytget/ytdlp-gui/internal/model"

// SettingsStore tracks the download location shown in the settings panel
type SettingsStore struct {
	*Writable[model.SettingsState]
	locations LocationProvider
}

// NewSettingsStore creates an empty SettingsStore
func NewSettingsStore(locations LocationProvider) *SettingsStore {
	return &SettingsStore{
		Writable:  NewWritable(model.SettingsState{}),
		locations: locations,
	}
}

// Load reads the current download location
func (s *SettingsStore) Load() {
	s.Update(func(st model.SettingsState) model.SettingsState {
		st.Loading = true
		st.Error = ""
		return st
	})

	dir, err := s.locations.DownloadLocation()
	if err != nil {
		s.Update(func(st model.SettingsState) model.SettingsState {
			st.Loading = false
			st.Error = err.Error()
			return st
		})
		return
	}

	s.Set(model.SettingsState{DownloadLocation: dir})
}

// Save stores path as the download location and reports whether it was accepted
func (s *SettingsStore) Save(path string) bool {
	s.Update(func(st model.SettingsState) model.SettingsState {
		st.Loading = true
		st.Error = ""
		return st
	})

	if err := s.locations.SetDownloadLocation(path); err != nil {
		s.Update(func(st model.SettingsState) model.SettingsState {
			st.Loading = false
			st.Error = err.Error()
			return st
		})
		return false
	}

	s.Update(func(st model.SettingsState) model.SettingsState {
		st.DownloadLocation = path
		st.Loading = false
		st.Error = ""
		return st
	})
	return true
}

// SetLocation changes the displayed location without saving it
func (s *SettingsStore) SetLocation(path string) {
	s.Update(func(st model.SettingsState) model.SettingsState {
		st.DownloadLocation = path
		return st
	})
}
