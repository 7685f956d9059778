package store

import (
	"context"
	"errors"
	"sync"

	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
)

var errCancelled = errors.New("download cancelled")

// fakeBridge implements every interface the stores consume
type fakeBridge struct {
	mu sync.Mutex

	version    model.VersionInfo
	versionErr error
	appVersion string

	infos      map[string]model.VideoInfo
	infoErr    error
	formats    []model.VideoFormat
	formatsErr error
	infoCalls  int

	bus          *events.Bus
	lines        []string
	downloadErr  error
	release      chan struct{}
	started      chan struct{}
	cancelCalled bool

	location    string
	locationErr error
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		bus:        events.NewBus(),
		appVersion: "0.1.0",
		infos:      map[string]model.VideoInfo{},
		location:   "/downloads",
	}
}

func (f *fakeBridge) YtdlpVersion(context.Context) (model.VersionInfo, error) {
	return f.version, f.versionErr
}

func (f *fakeBridge) AppVersion() string { return f.appVersion }

func (f *fakeBridge) VideoInfo(_ context.Context, url string) (model.VideoInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	if f.infoErr != nil {
		return model.VideoInfo{}, f.infoErr
	}
	return f.infos[url], nil
}

func (f *fakeBridge) VideoFormats(context.Context, string) ([]model.VideoFormat, error) {
	return f.formats, f.formatsErr
}

func (f *fakeBridge) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls
}

func (f *fakeBridge) Events() *events.Bus { return f.bus }

func (f *fakeBridge) Download(ctx context.Context, url, quality string) (string, error) {
	for _, line := range f.lines {
		f.bus.Emit(events.TopicDownloadOutput, line)
	}
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", errCancelled
		}
	}
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return "Download completed to: " + f.location, nil
}

func (f *fakeBridge) CancelDownload() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalled = true
	return nil
}

func (f *fakeBridge) DownloadLocation() (string, error) {
	return f.location, f.locationErr
}

func (f *fakeBridge) SetDownloadLocation(path string) error {
	if f.locationErr != nil {
		return f.locationErr
	}
	f.location = path
	return nil
}
