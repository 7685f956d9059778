package backend

import "path/filepath"

// Quality values with a fixed selector chain
const (
	QualityBest  = "best"
	QualityWorst = "worst"
)

// Format selectors preferring H.264 video with AAC audio in an MP4 container
const (
	SelectorBest  = "bestvideo[ext=mp4][vcodec^=avc1]+bestaudio[ext=mp4][acodec^=mp4a]/bestvideo[ext=mp4]+bestaudio[ext=mp4]/best[ext=mp4]"
	SelectorWorst = "worstvideo[ext=mp4][vcodec^=avc1]+worstaudio[ext=mp4][acodec^=mp4a]/worstvideo[ext=mp4]+worstaudio[ext=mp4]/worst[ext=mp4]"

	formatWithAudioSuffix = "+bestaudio[ext=mp4]/best[ext=mp4]"
)

// yt-dlp flags
const (
	FlagVersion           = "--version"
	FlagDumpJSON          = "--dump-json"
	FlagDumpSingleJSON    = "-J"
	FlagNoDownload        = "--no-download"
	FlagNoWarnings        = "--no-warnings"
	FlagOutput            = "--output"
	FlagNewline           = "--newline"
	FlagProgress          = "--progress"
	FlagMergeOutputFormat = "--merge-output-format"
	FlagFormat            = "-f"
	MergeFormatMP4        = "mp4"
)

// FormatSelector returns the -f argument for a quality choice
func FormatSelector(quality string) string {
	switch quality {
	case "", QualityBest:
		return SelectorBest
	case QualityWorst:
		return SelectorWorst
	default:
		return quality + formatWithAudioSuffix
	}
}

// VersionArgs returns the arguments printing the yt-dlp version
func VersionArgs() []string {
	return []string{FlagVersion}
}

// InfoArgs returns the arguments dumping video metadata
func InfoArgs(url string) []string {
	return []string{FlagDumpJSON, FlagNoDownload, FlagNoWarnings, url}
}

// FormatsArgs returns the arguments dumping the format list
func FormatsArgs(url string) []string {
	return []string{FlagDumpSingleJSON, FlagNoWarnings, url}
}

// DownloadArgs returns the arguments of a download into dir
func DownloadArgs(dir, outputTemplate, quality, url string) []string {
	return []string{
		FlagOutput, filepath.Join(dir, outputTemplate),
		FlagNewline,
		FlagProgress,
		FlagNoWarnings,
		FlagMergeOutputFormat, MergeFormatMP4,
		FlagFormat, FormatSelector(quality),
		url,
	}
}
