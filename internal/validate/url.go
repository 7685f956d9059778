// Package validate checks user input before it reaches yt-dlp.
package validate

import (
	"regexp"
	"strings"
)

// videoURLPatterns is the allow-list of accepted video URL shapes.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)/.+`),
	regexp.MustCompile(`^https?://m\.youtube\.com/.+`),
	regexp.MustCompile(`^https?://youtube\.com/shorts/.+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/v/[\w-]+`),
}

// IsValidVideoURL reports whether url, once trimmed, matches one of the
// supported video URL patterns.
func IsValidVideoURL(url string) bool {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return false
	}

	for _, pattern := range videoURLPatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}
