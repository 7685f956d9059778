package ansi

import (
	"regexp"
	"strconv"
	"strings"
)

// Colors used by the pattern based colorizer
const (
	ColorAccent  = ColorBlue
	ColorError   = ColorRed
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorETA     = ColorCyan
	ColorSpeed   = ColorBrightCyan
)

// Progress thresholds in percent
const (
	LowProgressBelow   = 33.0
	MediumProgressUpTo = 66.0
)

// DownloadTag marks yt-dlp download progress lines.
const DownloadTag = "[download]"

const (
	colorDeclPrefix    = "color: "
	percentStyleSuffix = "; " + DeclBold
	speedReplaceFormat = "${1} ${2}/s"
)

var (
	percentPattern = regexp.MustCompile(`(\d+\.?\d*)%`)
	etaPattern     = regexp.MustCompile(`ETA\s+\d+(?::\d+)+`)
	speedPattern   = regexp.MustCompile(`(\d+\.?\d*)\s*(MiB|KiB)/s`)
)

var (
	errorWords   = []string{"error", "failed"}
	successWords = []string{"complete", "finished"}
	warningWords = []string{"warning"}
	speedTokens  = []string{"ETA", "MiB/s", "KiB/s"}
)

// Colorize highlights a progress line that carries no escape codes. Exactly one
// category applies, checked in order: download progress, error, success,
// warning, speed/ETA tokens.
func Colorize(line string) string {
	escaped := EscapeHTML(line)
	lower := strings.ToLower(line)

	switch {
	case strings.Contains(line, DownloadTag):
		return colorizeProgress(line, escaped)
	case containsAny(lower, errorWords):
		return span(colorDeclPrefix+ColorError, escaped)
	case containsAny(lower, successWords):
		return span(colorDeclPrefix+ColorSuccess, escaped)
	case containsAny(lower, warningWords):
		return span(colorDeclPrefix+ColorWarning, escaped)
	case containsAny(line, speedTokens):
		out := etaPattern.ReplaceAllStringFunc(escaped, func(m string) string {
			return span(colorDeclPrefix+ColorETA, m)
		})
		return speedPattern.ReplaceAllString(out, span(colorDeclPrefix+ColorSpeed, speedReplaceFormat))
	default:
		return escaped
	}
}

// colorizeProgress colors the first percentage of a [download] line, or the tag
// itself when the line has no percentage.
func colorizeProgress(line, escaped string) string {
	m := percentPattern.FindStringSubmatch(line)
	if m == nil {
		return strings.Replace(escaped, DownloadTag, span(colorDeclPrefix+ColorAccent, DownloadTag), 1)
	}

	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return escaped
	}

	loc := percentPattern.FindStringIndex(escaped)
	if loc == nil {
		return escaped
	}
	styled := span(colorDeclPrefix+ProgressColor(percent)+percentStyleSuffix, escaped[loc[0]:loc[1]])
	return escaped[:loc[0]] + styled + escaped[loc[1]:]
}

// Classify returns the single color the colorizer would use for a plain line,
// or "" when no category applies. Progress lines take the color of their
// first percentage.
func Classify(line string) string {
	lower := strings.ToLower(line)

	switch {
	case strings.Contains(line, DownloadTag):
		m := percentPattern.FindStringSubmatch(line)
		if m == nil {
			return ColorAccent
		}
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return ColorAccent
		}
		return ProgressColor(percent)
	case containsAny(lower, errorWords):
		return ColorError
	case containsAny(lower, successWords):
		return ColorSuccess
	case containsAny(lower, warningWords):
		return ColorWarning
	case containsAny(line, speedTokens):
		return ColorSpeed
	default:
		return ""
	}
}

// ProgressColor maps a completion percentage to red, yellow or green.
func ProgressColor(percent float64) string {
	switch {
	case percent < LowProgressBelow:
		return ColorRed
	case percent <= MediumProgressUpTo:
		return ColorYellow
	default:
		return ColorGreen
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
