package backend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrYtdlpNotFound      = errors.New("yt-dlp not found: install it or bundle it with the application")
	ErrDownloadInProgress = errors.New("a download is already in progress")
	ErrDownloadCancelled  = errors.New("download cancelled")
	ErrDownloadFailed     = errors.New("download failed")
	ErrInvalidLocation    = errors.New("invalid download location")
)

// ProcessError is returned when yt-dlp exits unsuccessfully
type ProcessError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	if msg := lastLine(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("yt-dlp %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// lastLine returns the last non-empty line of s
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
