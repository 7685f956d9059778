package ui

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
)

type fakeBridge struct {
	bus *events.Bus
}

func (f *fakeBridge) YtdlpVersion(context.Context) (model.VersionInfo, error) {
	return model.VersionInfo{}, errors.New("yt-dlp not found")
}
func (f *fakeBridge) AppVersion() string { return "dev" }
func (f *fakeBridge) VideoInfo(context.Context, string) (model.VideoInfo, error) {
	return model.VideoInfo{Title: "Video"}, nil
}
func (f *fakeBridge) VideoFormats(context.Context, string) ([]model.VideoFormat, error) {
	return nil, nil
}
func (f *fakeBridge) Download(context.Context, string, string) (string, error) { return "", nil }
func (f *fakeBridge) CancelDownload() error                                    { return nil }
func (f *fakeBridge) DownloadLocation() (string, error)                        { return "/downloads", nil }
func (f *fakeBridge) SetDownloadLocation(string) error                         { return nil }
func (f *fakeBridge) Events() *events.Bus                                      { return f.bus }

func newTestRoot(t *testing.T) *RootUI {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	window := app.NewWindow("")
	ui := NewRootUI(window, &fakeBridge{bus: events.NewBus()}, config.NewSettings(app), Options{})
	t.Cleanup(ui.Close)
	return ui
}

func TestRenderVideoQualityOptions(t *testing.T) {
	ui := newTestRoot(t)

	st := model.NewVideoState()
	st.URL = "https://youtu.be/abc"
	st.Title = "Video"
	st.IsValid = true
	st.ShowDownloadSection = true
	st.Formats = []model.VideoFormat{
		{FormatID: "137", QualityLabel: "1920x1080 (MP4) @ 25fps"},
		{FormatID: "22", QualityLabel: "1280x720 (MP4) @ 30fps"},
	}
	ui.video.Set(st)
	ui.renderVideo(st)

	require.Equal(t, []string{
		"Best Quality (Default)",
		"1920x1080 (MP4) @ 25fps",
		"1280x720 (MP4) @ 30fps",
	}, ui.qualitySelect.Options)
	assert.Equal(t, "Best Quality (Default)", ui.qualitySelect.Selected)
	assert.Equal(t, "Video", ui.titleLabel.Text)
	assert.True(t, ui.downloadSection.Visible())
	assert.False(t, ui.infoLabel.Visible())

	st.SelectedQuality = "22"
	ui.video.Set(st)
	ui.renderVideo(st)
	assert.Equal(t, "1280x720 (MP4) @ 30fps", ui.qualitySelect.Selected)
}

func TestRenderVideoError(t *testing.T) {
	ui := newTestRoot(t)

	st := model.NewVideoState()
	st.Error = "Invalid YouTube URL. Please enter a valid YouTube video URL."
	ui.renderVideo(st)

	assert.True(t, ui.infoLabel.Visible())
	assert.Equal(t, st.Error, ui.infoLabel.Text)
	assert.Equal(t, widget.DangerImportance, ui.infoLabel.Importance)
	assert.False(t, ui.downloadSection.Visible())
}

func TestRenderDownload(t *testing.T) {
	ui := newTestRoot(t)

	ui.renderDownload(model.DownloadState{
		InProgress:  true,
		Active:      true,
		Status:      "Downloading video...",
		StatusType:  model.StatusPrimary,
		ShowCancel:  true,
		OutputLines: []string{"[download]  10.0% of 5MiB"},
	})

	assert.True(t, ui.downloadBtn.Disabled())
	assert.Equal(t, "Downloading...", ui.downloadBtn.Text)
	assert.True(t, ui.cancelBtn.Visible())
	assert.Equal(t, widget.HighImportance, ui.statusLabel.Importance)
	assert.Len(t, ui.output.Segments, 1)

	ui.renderDownload(model.DownloadState{
		Status:     "Download failed: boom",
		StatusType: model.StatusError,
	})

	assert.False(t, ui.downloadBtn.Disabled())
	assert.Equal(t, "Download Video", ui.downloadBtn.Text)
	assert.False(t, ui.cancelBtn.Visible())
	assert.Equal(t, widget.DangerImportance, ui.statusLabel.Importance)
	assert.Empty(t, ui.output.Segments)
}

func TestStatusImportance(t *testing.T) {
	assert.Equal(t, widget.LowImportance, statusImportance(model.StatusMuted))
	assert.Equal(t, widget.SuccessImportance, statusImportance(model.StatusSuccess))
}
