package ui

import (
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-gui/internal/ansi"
)

// OutputSegments converts yt-dlp output lines into rich text, one paragraph
// per line. Lines with escape codes keep their own styles; plain lines are
// colored by the pattern colorizer. Background colors are dropped.
func OutputSegments(lines []string) []widget.RichTextSegment {
	var segments []widget.RichTextSegment
	for _, line := range lines {
		segments = append(segments, lineSegments(line)...)
	}
	return segments
}

func lineSegments(line string) []widget.RichTextSegment {
	if !ansi.HasEscapes(line) {
		style := outputStyle()
		style.Inline = false
		if c := ansi.Classify(line); c != "" {
			style.ColorName = ANSIColorName(c)
		}
		return []widget.RichTextSegment{&widget.TextSegment{Text: line, Style: style}}
	}

	runs := ansi.Parse(line)
	if len(runs) == 0 {
		style := outputStyle()
		style.Inline = false
		return []widget.RichTextSegment{&widget.TextSegment{Style: style}}
	}

	segments := make([]widget.RichTextSegment, 0, len(runs))
	for i, run := range runs {
		style := runStyle(run.Style)
		style.Inline = i < len(runs)-1
		segments = append(segments, &widget.TextSegment{Text: run.Text, Style: style})
	}
	return segments
}

func runStyle(st ansi.StyleState) widget.RichTextStyle {
	style := outputStyle()
	style.TextStyle.Bold = st.Bold
	style.TextStyle.Italic = st.Italic
	style.TextStyle.Underline = st.Underline

	switch c, ok := ansi.ForegroundColor(st.Foreground); {
	case ok:
		style.ColorName = ANSIColorName(c)
	case st.Dim:
		style.ColorName = theme.ColorNamePlaceHolder
	}
	return style
}

func outputStyle() widget.RichTextStyle {
	style := widget.RichTextStyleCodeInline
	style.Inline = true
	return style
}
