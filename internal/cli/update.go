package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/updater"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Install the latest yt-dlp release next to the application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.newService(config.NewFileStore(""))
			u := updater.New(opts.cfg.Updater.ReleasesURL, opts.cfg.Updater.Timeout, svc.Locator(), svc)
			out := cmd.OutOrStdout()

			if check {
				status, err := u.CheckUpdate(cmd.Context())
				if err != nil {
					return err
				}
				current := status.Current
				if current == "" {
					current = msgVersionNotFound
				}
				fmt.Fprintf(out, "installed: %s\nlatest:    %s\n", current, status.Latest)
				if status.Available {
					fmt.Fprintln(out, "An update is available.")
				}
				return nil
			}

			msg, err := u.Update(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only report whether an update is available")
	return cmd
}
