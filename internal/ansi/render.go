package ansi

import (
	"regexp"
	"strings"
)

// introducer starts every control sequence.
const introducer = "\x1b["

// csiPattern matches a whole control sequence: parameters, intermediates and
// the final byte. Only those ending in 'm' with numeric parameters are SGR.
var csiPattern = regexp.MustCompile(`\x1b\[([0-?]*)[ -/]*([@-~])`)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Run is a maximal piece of text sharing one style.
type Run struct {
	Text  string
	Style StyleState
}

// EscapeHTML escapes the characters that carry meaning in HTML markup.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// HasEscapes reports whether text contains a control sequence introducer.
func HasEscapes(text string) bool {
	return strings.Contains(text, introducer)
}

// Parse splits text into styled runs, consuming the control sequences.
// SGR sequences change the style; any other sequence, such as erase-line,
// is dropped. Runs are never empty and adjacent runs always differ in style.
func Parse(text string) []Run {
	var runs []Run
	var state StyleState
	last := 0

	for _, m := range csiPattern.FindAllStringSubmatchIndex(text, -1) {
		runs = appendRun(runs, text[last:m[0]], state)
		if params := text[m[2]:m[3]]; text[m[4]:m[5]] == "m" && isSGRParams(params) {
			state = state.applyParams(params)
		}
		last = m[1]
	}

	return appendRun(runs, text[last:], state)
}

func isSGRParams(params string) bool {
	return strings.Trim(params, "0123456789;") == ""
}

func appendRun(runs []Run, text string, style StyleState) []Run {
	if text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Style == style {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, Run{Text: text, Style: style})
}

// Render converts text with escape sequences into HTML. Every run with
// active attributes becomes one span with an inline style; unstyled runs are
// emitted as escaped text.
func Render(text string) string {
	var b strings.Builder
	for _, run := range Parse(text) {
		writeSpan(&b, run.Style.CSS(), EscapeHTML(run.Text))
	}
	return b.String()
}

// RenderLine renders one progress line, falling back to Colorize when the line
// carries no control sequence introducer.
func RenderLine(line string) string {
	if HasEscapes(line) {
		return Render(line)
	}
	return Colorize(line)
}

// writeSpan writes escaped text, wrapped in a span when css is non-empty.
func writeSpan(b *strings.Builder, css, escaped string) {
	if css == "" {
		b.WriteString(escaped)
		return
	}
	b.WriteString(`<span style="`)
	b.WriteString(css)
	b.WriteString(`">`)
	b.WriteString(escaped)
	b.WriteString("</span>")
}

func span(css, escaped string) string {
	var b strings.Builder
	writeSpan(&b, css, escaped)
	return b.String()
}
