package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconLanguage = "🌐"
)

// Window sizing
const (
	WindowWidth  float32 = 720
	WindowHeight float32 = 520

	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 260
)

// Debounce durations
const (
	DefaultFetchDebounce = 500 * time.Millisecond
)

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
)
