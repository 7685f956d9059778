package cli

const (
	msgRootShort = "Desktop front-end for yt-dlp"
	msgRootLong  = `ytdlp-gui fetches video metadata and downloads videos with yt-dlp.

Without a subcommand it opens the desktop window. Configuration is read from
the TOML file given by --config (default $XDG_CONFIG_HOME/ytdlp-gui/config.toml)
and from YTDLP_GUI_* environment variables.`

	msgRenderLong = `Reads lines from standard input and prints them as HTML.

Lines carrying SGR escape sequences are converted to styled spans; other lines
are highlighted by the progress colorizer. --fallback forces the colorizer.`

	msgDownloadLong = `Downloads a video into the configured download location.

yt-dlp output is printed as it arrives. Press Ctrl-C to cancel.`

	msgVersionNotFound = "not found"
)
