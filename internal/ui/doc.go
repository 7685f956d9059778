// Package ui contains the Fyne desktop window of the application.
//
// The window renders the stores in package store: the yt-dlp version line,
// the URL entry with its video card, the quality picker, the download and
// cancel buttons, and the most recent yt-dlp output lines with their colors.
// All widget labels are localized via Localization.
package ui
