package model

// QualityBest is the default quality selection
const QualityBest = "best"

// AppState mirrors version information and shell flags
type AppState struct {
	YtdlpVersion string
	YtdlpSource  VersionSource
	AppVersion   string
	Loading      bool
	SettingsOpen bool
}

// VideoState mirrors the URL being inspected and its metadata
type VideoState struct {
	URL                 string
	Title               string
	Formats             []VideoFormat
	SelectedQuality     string
	Loading             bool
	Error               string
	IsValid             bool
	ShowDownloadSection bool
}

// DownloadState mirrors the running download and its recent output
type DownloadState struct {
	InProgress   bool
	Active       bool
	OutputLines  []string
	Status       string
	StatusType   StatusType
	ButtonText   string
	ShowCancel   bool
	ShowProgress bool
}

// SettingsState mirrors the persisted download location
type SettingsState struct {
	DownloadLocation string
	Loading          bool
	Error            string
}

// NewVideoState returns the empty video state
func NewVideoState() VideoState {
	return VideoState{SelectedQuality: QualityBest}
}
