// Package ansi turns yt-dlp progress output into display markup. Render converts
// SGR escape sequences into inline-styled HTML spans, Colorize highlights plain
// progress lines by pattern, and Parse exposes the styled runs for shells that
// do not render HTML.
package ansi
