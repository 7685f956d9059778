package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/platform"
	"github.com/ytget/ytdlp-gui/internal/store"
)

var languageOrder = []string{LangSystem, LangEnglish, LangRussian}

// SettingsDialog edits the download location and the interface language
type SettingsDialog struct {
	settings     *config.Settings
	locations    *store.SettingsStore
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onClosed     func()

	locationEntry  *widget.Entry
	languageSelect *widget.Select
	languageCodes  map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, locations *store.SettingsStore, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		locations:     locations,
		localization:  localization,
		window:        window,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// SetOnClosed sets a callback run whenever the dialog closes
func (sd *SettingsDialog) SetOnClosed(fn func()) {
	sd.onClosed = fn
}

// Show loads the current settings and displays the dialog
func (sd *SettingsDialog) Show() {
	sd.locations.Load()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// Hide closes the dialog without saving
func (sd *SettingsDialog) Hide() {
	sd.dialog.Hide()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.locationEntry = widget.NewEntry()
	sd.locationEntry.OnChanged = sd.locations.SetLocation

	browseBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	openBtn := widget.NewButton(IconFolder, sd.onOpenFolder)
	locationRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, openBtn), sd.locationEntry)

	labels := sd.settings.GetLanguageOptions()
	options := make([]string, 0, len(languageOrder))
	for _, code := range languageOrder {
		label := labels[code]
		sd.languageCodes[label] = code
		options = append(options, label)
	}
	sd.languageSelect = widget.NewSelect(options, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDownloadLocation)+":"),
		locationRow,
		widget.NewSeparator(),
		widget.NewLabel(IconLanguage+" "+l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyClose),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.locationEntry.SetText(sd.locations.Get().DownloadLocation)

	current := sd.settings.GetLanguage()
	for label, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(label)
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.locationEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onOpenFolder() {
	if err := platform.OpenFolder(sd.locationEntry.Text); err != nil {
		dialog.ShowError(err, sd.window)
	}
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	defer func() {
		if sd.onClosed != nil {
			sd.onClosed()
		}
	}()
	if !confirmed {
		return
	}

	if !sd.locations.Save(sd.locationEntry.Text) {
		dialog.ShowError(errors.New(sd.locations.Get().Error), sd.window)
		return
	}

	msg := sd.localization.GetText(KeySettingsSaved)
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok && code != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(code)
		msg += ". " + sd.localization.GetText(KeyLanguageRestart)
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), msg, sd.window)
}
