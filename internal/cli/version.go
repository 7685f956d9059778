package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/logging"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ytdlp-gui version %s\n", opts.version)

			info, err := opts.newService(config.NewFileStore("")).YtdlpVersion(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "  yt-dlp:  %s\n", msgVersionNotFound)
			} else {
				fmt.Fprintf(out, "  yt-dlp:  %s (%s)\n", info.Version, info.Source.LongLabel())
			}

			configPath := opts.configPath
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			fmt.Fprintf(out, "  config:  %s\n", configPath)
			fmt.Fprintf(out, "  log:     %s\n", logging.FilePath())
		},
	}
}
