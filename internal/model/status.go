package model

// StatusType classifies the status line shown under the download button
type StatusType string

const (
	// StatusMuted is used for idle and cancelled states
	StatusMuted StatusType = "muted"

	// StatusPrimary means an operation is running
	StatusPrimary StatusType = "primary"

	// StatusSuccess means the last operation finished successfully
	StatusSuccess StatusType = "success"

	// StatusError means the last operation failed
	StatusError StatusType = "error"
)

// String returns the string representation of StatusType
func (st StatusType) String() string {
	return string(st)
}

// IsValid returns true for the known status types
func (st StatusType) IsValid() bool {
	switch st {
	case StatusMuted, StatusPrimary, StatusSuccess, StatusError:
		return true
	}
	return false
}

// VersionSource tells where the yt-dlp executable was found
type VersionSource string

const (
	// SourcePath means yt-dlp was found on the system PATH or configured explicitly
	SourcePath VersionSource = "path"

	// SourceBundled means yt-dlp ships in the application resources
	SourceBundled VersionSource = "bundled"
)

// Label returns the short label used in the window title
func (vs VersionSource) Label() string {
	if vs == SourceBundled {
		return "Bundled"
	}
	return "System"
}

// LongLabel returns the label used in the version line
func (vs VersionSource) LongLabel() string {
	if vs == SourceBundled {
		return "Bundled"
	}
	return "System PATH"
}
