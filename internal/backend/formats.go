package backend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// Values used when yt-dlp omits a field
const (
	UnknownTitle      = "Unknown Title"
	UnknownResolution = "unknown"
	vcodecNone        = "none"
	extMP4            = "mp4"
)

type rawInfo struct {
	Title     *string  `json:"title"`
	Duration  *float64 `json:"duration"`
	ViewCount *int64   `json:"view_count"`
	Uploader  *string  `json:"uploader"`
}

type rawFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Vcodec         *string  `json:"vcodec"`
	Resolution     *string  `json:"resolution"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	FPS            *float64 `json:"fps"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

type rawFormats struct {
	Formats []rawFormat `json:"formats"`
}

// ParseVideoInfo decodes the output of yt-dlp --dump-json
func ParseVideoInfo(data []byte) (model.VideoInfo, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.VideoInfo{}, fmt.Errorf("failed to parse video info: %w", err)
	}

	info := model.VideoInfo{
		Title:     UnknownTitle,
		Duration:  raw.Duration,
		ViewCount: raw.ViewCount,
	}
	if raw.Title != nil && *raw.Title != "" {
		info.Title = *raw.Title
	}
	if raw.Uploader != nil {
		info.Uploader = *raw.Uploader
	}
	return info, nil
}

// ParseFormats decodes the output of yt-dlp -J into selectable MP4 video formats,
// one per resolution, largest width first
func ParseFormats(data []byte) ([]model.VideoFormat, error) {
	var raw rawFormats
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse formats: %w", err)
	}

	byResolution := make(map[string]model.VideoFormat)
	for _, f := range raw.Formats {
		if f.Vcodec != nil && *f.Vcodec == vcodecNone {
			continue
		}
		if f.Ext != extMP4 {
			continue
		}

		format := toVideoFormat(f)
		existing, seen := byResolution[format.Resolution]
		if !seen || format.FileSize > existing.FileSize {
			byResolution[format.Resolution] = format
		}
	}

	formats := make([]model.VideoFormat, 0, len(byResolution))
	for _, f := range byResolution {
		formats = append(formats, f)
	}

	sort.Slice(formats, func(i, j int) bool {
		wi, wj := resolutionWidth(formats[i].Resolution), resolutionWidth(formats[j].Resolution)
		if wi != wj {
			return wi > wj
		}
		return formats[i].Resolution < formats[j].Resolution
	})

	return formats, nil
}

func toVideoFormat(f rawFormat) model.VideoFormat {
	resolution := UnknownResolution
	switch {
	case f.Resolution != nil && *f.Resolution != "":
		resolution = *f.Resolution
	case f.Width != nil && f.Height != nil && *f.Width > 0 && *f.Height > 0:
		resolution = fmt.Sprintf("%dx%d", *f.Width, *f.Height)
	}

	var size int64
	switch {
	case f.Filesize != nil:
		size = *f.Filesize
	case f.FilesizeApprox != nil:
		size = *f.FilesizeApprox
	}

	ext := strings.ToUpper(f.Ext)
	label := fmt.Sprintf("Format %s (%s)", f.FormatID, ext)
	if resolution != UnknownResolution {
		label = fmt.Sprintf("%s (%s)", resolution, ext)
		if f.FPS != nil {
			label += fmt.Sprintf(" @ %dfps", int(*f.FPS))
		}
	}

	return model.VideoFormat{
		FormatID:     f.FormatID,
		QualityLabel: label,
		Resolution:   resolution,
		Ext:          f.Ext,
		FileSize:     size,
	}
}

// resolutionWidth returns the width of a "WxH" resolution, or 0
func resolutionWidth(resolution string) int {
	width, _, _ := strings.Cut(resolution, "x")
	n, err := strconv.Atoi(width)
	if err != nil {
		return 0
	}
	return n
}
