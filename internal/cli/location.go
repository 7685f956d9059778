package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/config"
)

func newLocationCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "location [PATH]",
		Short: "Show or change the download location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.newService(config.NewFileStore(""))

			if len(args) == 1 {
				if err := svc.SetDownloadLocation(args[0]); err != nil {
					return err
				}
			}

			dir, err := svc.DownloadLocation()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
