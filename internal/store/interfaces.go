package store

import (
	"context"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// VersionProvider reports tool and application versions
type VersionProvider interface {
	YtdlpVersion(ctx context.Context) (model.VersionInfo, error)
	AppVersion() string
}

// VideoResolver resolves metadata and formats for a URL
type VideoResolver interface {
	VideoInfo(ctx context.Context, url string) (model.VideoInfo, error)
	VideoFormats(ctx context.Context, url string) ([]model.VideoFormat, error)
}

// Downloader runs and cancels downloads and publishes their output
type Downloader interface {
	Download(ctx context.Context, url, quality string) (string, error)
	CancelDownload() error
	Events() *events.Bus
}

// LocationProvider reads and writes the download location
type LocationProvider interface {
	DownloadLocation() (string, error)
	SetDownloadLocation(path string) error
}
