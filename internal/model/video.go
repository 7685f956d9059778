package model

import (
	"fmt"
	"strings"
)

// VersionInfo describes the yt-dlp executable in use
type VersionInfo struct {
	Version string        `json:"version"`
	Source  VersionSource `json:"source"`
}

// VideoInfo is the metadata shown after a URL is resolved
type VideoInfo struct {
	Title     string   `json:"title"`
	Duration  *float64 `json:"duration,omitempty"`   // seconds
	ViewCount *int64   `json:"view_count,omitempty"` // nil if unknown
	Uploader  string   `json:"uploader,omitempty"`
}

// VideoFormat is one selectable quality option
type VideoFormat struct {
	FormatID     string `json:"format_id"`
	QualityLabel string `json:"quality_label"`
	Resolution   string `json:"resolution,omitempty"`
	Ext          string `json:"ext,omitempty"`
	FileSize     int64  `json:"filesize,omitempty"` // bytes, 0 if unknown
}

// DurationString returns the duration formatted as hh:mm:ss or mm:ss, or "—" if unknown
func (vi *VideoInfo) DurationString() string {
	if vi.Duration == nil || *vi.Duration <= 0 {
		return "—"
	}

	total := int(*vi.Duration)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// ViewCountString returns the view count with thousands separators, or "" if unknown
func (vi *VideoInfo) ViewCountString() string {
	if vi.ViewCount == nil {
		return ""
	}

	digits := fmt.Sprintf("%d", *vi.ViewCount)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Summary returns the title with duration and uploader when they are known
func (vi *VideoInfo) Summary() string {
	parts := []string{vi.Title}
	if d := vi.DurationString(); d != "—" {
		parts = append(parts, d)
	}
	if vi.Uploader != "" {
		parts = append(parts, vi.Uploader)
	}
	return strings.Join(parts, " · ")
}
