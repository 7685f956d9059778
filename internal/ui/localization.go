package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyEnterURL         = "enter_url"
	KeyDownload         = "download"
	KeyDownloading      = "downloading"
	KeyCancel           = "cancel"
	KeySettings         = "settings"
	KeyLanguage         = "language"
	KeyDownloadLocation = "download_location"
	KeyBrowse           = "browse"
	KeyOpenFolder       = "open_folder"
	KeySave             = "save"
	KeyClose            = "close"
	KeyQuality          = "quality"
	KeyQualityBest      = "quality_best"
	KeyLoadingVideo     = "loading_video"
	KeyVersionLoading   = "version_loading"
	KeyVersionPrefix    = "version_prefix"
	KeyVersionMissing   = "version_missing"
	KeySettingsSaved    = "settings_saved"
	KeyLanguageRestart  = "language_restart"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = LangEnglish
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if text, found := l.texts[LangEnglish][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyEnterURL:         "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyDownload:         "Download Video",
		KeyDownloading:      "Downloading...",
		KeyCancel:           "Cancel",
		KeySettings:         "Settings",
		KeyLanguage:         "Language",
		KeyDownloadLocation: "Download Location",
		KeyBrowse:           "Browse",
		KeyOpenFolder:       "Open Folder",
		KeySave:             "Save",
		KeyClose:            "Close",
		KeyQuality:          "Quality",
		KeyQualityBest:      "Best Quality (Default)",
		KeyLoadingVideo:     "Loading video information...",
		KeyVersionLoading:   "YT-DLP Version: loading...",
		KeyVersionPrefix:    "YT-DLP Version: ",
		KeyVersionMissing:   "YT-DLP Version: not found",
		KeySettingsSaved:    "Settings saved",
		KeyLanguageRestart:  "The new language applies to new windows",
	}

	l.texts[LangRussian] = map[string]string{
		KeyEnterURL:         "Введите URL YouTube (https://youtube.com/watch?v=...)",
		KeyDownload:         "Скачать видео",
		KeyDownloading:      "Загрузка...",
		KeyCancel:           "Отмена",
		KeySettings:         "Настройки",
		KeyLanguage:         "Язык",
		KeyDownloadLocation: "Папка загрузки",
		KeyBrowse:           "Обзор",
		KeyOpenFolder:       "Открыть папку",
		KeySave:             "Сохранить",
		KeyClose:            "Закрыть",
		KeyQuality:          "Качество",
		KeyQualityBest:      "Лучшее качество (по умолчанию)",
		KeyLoadingVideo:     "Загрузка информации о видео...",
		KeyVersionLoading:   "Версия YT-DLP: загрузка...",
		KeyVersionPrefix:    "Версия YT-DLP: ",
		KeyVersionMissing:   "Версия YT-DLP: не найдена",
		KeySettingsSaved:    "Настройки сохранены",
		KeyLanguageRestart:  "Новый язык применяется к новым окнам",
	}
}
