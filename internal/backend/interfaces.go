package backend

import (
	"context"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Bridge is the command surface used by the stores and shells.
type Bridge interface {
	YtdlpVersion(ctx context.Context) (model.VersionInfo, error)
	AppVersion() string
	VideoInfo(ctx context.Context, url string) (model.VideoInfo, error)
	VideoFormats(ctx context.Context, url string) ([]model.VideoFormat, error)

	// Download blocks until the download finishes and returns a completion message.
	// Progress lines are published on Events while it runs.
	Download(ctx context.Context, url, quality string) (string, error)
	CancelDownload() error

	DownloadLocation() (string, error)
	SetDownloadLocation(path string) error

	Events() *events.Bus
}

// LocationStore persists the download location.
type LocationStore interface {
	GetDownloadLocation() string
	SetDownloadLocation(dir string) error
}
