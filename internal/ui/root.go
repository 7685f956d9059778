package ui

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/store"
)

// Options tunes the main window
type Options struct {
	MaxOutputLines   int
	FetchDebounce    time.Duration
	ClearOutputAfter time.Duration
}

// RootUI is the main window: version line, URL entry, video card,
// quality picker, download controls and output
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       zerolog.Logger
	debounce     time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	app       *store.AppStore
	video     *store.VideoStore
	download  *store.DownloadStore
	locations *store.SettingsStore

	settingsDialog *SettingsDialog
	settingsShown  bool

	versionLabel    *widget.Label
	urlEntry        *widget.Entry
	infoLabel       *widget.Label
	titleLabel      *widget.Label
	qualitySelect   *widget.Select
	downloadBtn     *widget.Button
	cancelBtn       *widget.Button
	statusLabel     *widget.Label
	output          *widget.RichText
	downloadSection *fyne.Container

	// label -> format id for the quality picker, UI goroutine only
	qualityIDs     map[string]string
	qualityOptions []string

	mu            sync.Mutex
	debounceTimer *time.Timer
	unsubscribe   []func()
}

// NewRootUI builds the main window content and starts loading the version
func NewRootUI(window fyne.Window, bridge backend.Bridge, settings *config.Settings, opts Options) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	debounce := opts.FetchDebounce
	if debounce <= 0 {
		debounce = DefaultFetchDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logging.Get("ui"),
		debounce:     debounce,
		ctx:          ctx,
		cancel:       cancel,
		app:          store.NewAppStore(bridge),
		video:        store.NewVideoStore(bridge),
		download:     store.NewDownloadStore(bridge, opts.MaxOutputLines, opts.ClearOutputAfter),
		locations:    store.NewSettingsStore(bridge),
		qualityIDs:   make(map[string]string),
	}

	ui.setupUI()
	ui.subscribe()
	window.SetOnClosed(ui.Close)

	go ui.app.LoadVersion(ctx)
	return ui
}

func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	ui.versionLabel = widget.NewLabel(l.GetText(KeyVersionLoading))
	ui.versionLabel.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.app.ToggleSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.urlEntry.OnSubmitted = ui.onURLSubmitted

	ui.infoLabel = widget.NewLabel("")
	ui.infoLabel.Wrapping = fyne.TextWrapWord
	ui.infoLabel.Hide()

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Wrapping = fyne.TextWrapWord

	ui.qualitySelect = widget.NewSelect(nil, ui.onQualityChanged)

	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Importance = widget.DangerImportance
	ui.cancelBtn.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.output = widget.NewRichText()
	ui.output.Wrapping = fyne.TextWrapBreak

	ui.downloadSection = container.NewVBox(
		widget.NewCard("", "", ui.titleLabel),
		container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyQuality)+":"), nil, ui.qualitySelect),
		container.NewHBox(ui.downloadBtn, ui.cancelBtn),
		ui.statusLabel,
		ui.output,
	)
	ui.downloadSection.Hide()

	top := container.NewBorder(nil, nil, nil, settingsBtn, ui.versionLabel)
	content := container.NewVBox(top, ui.urlEntry, ui.infoLabel, ui.downloadSection)

	ui.settingsDialog = NewSettingsDialog(ui.settings, ui.locations, l, ui.window)
	ui.settingsDialog.SetOnClosed(ui.app.CloseSettings)

	ui.window.SetContent(container.NewPadded(content))
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.app.OpenSettings)
	ui.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu(store.AppTitle, settingsItem)))
}

func (ui *RootUI) subscribe() {
	ui.unsubscribe = []func(){
		ui.app.Subscribe(func(st model.AppState) { fyne.Do(func() { ui.renderApp(st) }) }),
		ui.video.Subscribe(func(st model.VideoState) { fyne.Do(func() { ui.renderVideo(st) }) }),
		ui.download.Subscribe(func(st model.DownloadState) { fyne.Do(func() { ui.renderDownload(st) }) }),
	}
}

// Close stops pending work, cancels a running download and detaches from the stores
func (ui *RootUI) Close() {
	ui.mu.Lock()
	if ui.debounceTimer != nil {
		ui.debounceTimer.Stop()
	}
	unsubscribe := ui.unsubscribe
	ui.unsubscribe = nil
	ui.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
	if ui.download.Get().InProgress {
		if err := ui.download.Cancel(); err != nil {
			ui.logger.Warn().Err(err).Msg("Failed to cancel download on close")
		}
	}
	ui.cancel()
}

func (ui *RootUI) renderApp(st model.AppState) {
	l := ui.localization
	ui.window.SetTitle(store.WindowTitle(st))

	switch {
	case st.Loading:
		ui.versionLabel.SetText(l.GetText(KeyVersionLoading))
	case st.YtdlpVersion == "":
		ui.versionLabel.SetText(l.GetText(KeyVersionMissing))
	default:
		ui.versionLabel.SetText(l.GetText(KeyVersionPrefix) + st.YtdlpVersion + " (" + st.YtdlpSource.LongLabel() + ")")
	}

	if st.SettingsOpen != ui.settingsShown {
		ui.settingsShown = st.SettingsOpen
		if st.SettingsOpen {
			ui.settingsDialog.Show()
		} else {
			ui.settingsDialog.Hide()
		}
	}
}

func (ui *RootUI) renderVideo(st model.VideoState) {
	switch {
	case st.Loading:
		ui.infoLabel.Importance = widget.LowImportance
		ui.infoLabel.SetText(ui.localization.GetText(KeyLoadingVideo))
		ui.infoLabel.Show()
	case st.Error != "":
		ui.infoLabel.Importance = widget.DangerImportance
		ui.infoLabel.SetText(st.Error)
		ui.infoLabel.Show()
	default:
		ui.infoLabel.Hide()
	}

	ui.titleLabel.SetText(st.Title)
	ui.setQualityOptions(st.Formats)

	selected := ui.qualityLabel(st.SelectedQuality)
	if ui.qualitySelect.Selected != selected {
		ui.qualitySelect.SetSelected(selected)
	}

	if st.ShowDownloadSection {
		ui.downloadSection.Show()
	} else {
		ui.downloadSection.Hide()
	}
}

func (ui *RootUI) setQualityOptions(formats []model.VideoFormat) {
	best := ui.localization.GetText(KeyQualityBest)
	options := []string{best}
	ids := map[string]string{best: model.QualityBest}
	for _, f := range formats {
		if _, dup := ids[f.QualityLabel]; dup {
			continue
		}
		ids[f.QualityLabel] = f.FormatID
		options = append(options, f.QualityLabel)
	}

	if slices.Equal(options, ui.qualityOptions) {
		return
	}
	ui.qualityOptions = options
	ui.qualityIDs = ids
	ui.qualitySelect.SetOptions(options)
}

func (ui *RootUI) qualityLabel(id string) string {
	for label, formatID := range ui.qualityIDs {
		if formatID == id {
			return label
		}
	}
	return ui.localization.GetText(KeyQualityBest)
}

func (ui *RootUI) renderDownload(st model.DownloadState) {
	l := ui.localization
	if st.InProgress {
		ui.downloadBtn.SetText(l.GetText(KeyDownloading))
		ui.downloadBtn.Disable()
	} else {
		ui.downloadBtn.SetText(l.GetText(KeyDownload))
		ui.downloadBtn.Enable()
	}

	if st.ShowCancel {
		ui.cancelBtn.Show()
	} else {
		ui.cancelBtn.Hide()
	}

	ui.statusLabel.Importance = statusImportance(st.StatusType)
	ui.statusLabel.SetText(st.Status)

	ui.output.Segments = OutputSegments(st.OutputLines)
	ui.output.Refresh()
}

func statusImportance(st model.StatusType) widget.Importance {
	switch st {
	case model.StatusPrimary:
		return widget.HighImportance
	case model.StatusSuccess:
		return widget.SuccessImportance
	case model.StatusError:
		return widget.DangerImportance
	default:
		return widget.LowImportance
	}
}

func (ui *RootUI) onURLChanged(text string) {
	ui.video.SetURL(text)

	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.debounceTimer != nil {
		ui.debounceTimer.Stop()
	}
	ui.debounceTimer = time.AfterFunc(ui.debounce, func() {
		ui.video.ValidateAndFetch(ui.ctx, text)
	})
}

func (ui *RootUI) onURLSubmitted(text string) {
	ui.mu.Lock()
	if ui.debounceTimer != nil {
		ui.debounceTimer.Stop()
	}
	ui.mu.Unlock()

	go ui.video.ValidateAndFetch(ui.ctx, text)
}

func (ui *RootUI) onQualityChanged(label string) {
	id, ok := ui.qualityIDs[label]
	if !ok || id == ui.video.Get().SelectedQuality {
		return
	}
	ui.video.SetQuality(id)
}

func (ui *RootUI) onDownloadClick() {
	st := ui.video.Get()
	if !st.IsValid || st.URL == "" {
		return
	}

	go func() {
		err := ui.download.Start(ui.ctx, st.URL, st.SelectedQuality)
		if err != nil && !errors.Is(err, store.ErrBusy) {
			ui.logger.Debug().Err(err).Str("url", st.URL).Msg("Download ended with error")
		}
	}()
}

func (ui *RootUI) onCancelClick() {
	go func() {
		if err := ui.download.Cancel(); err != nil {
			ui.logger.Warn().Err(err).Msg("Failed to cancel download")
		}
	}()
}
