package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/events"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/store"
	"github.com/ytget/ytdlp-gui/internal/validate"
)

func argURL(args []string) (string, error) {
	url := strings.TrimSpace(args[0])
	if !validate.IsValidVideoURL(url) {
		return "", errors.New(store.MsgInvalidURL)
	}
	return url, nil
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info URL",
		Short: "Show video metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := argURL(args)
			if err != nil {
				return err
			}

			info, err := opts.newService(config.NewFileStore("")).VideoInfo(cmd.Context(), url)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(info)
			}
			fmt.Fprintln(out, info.Title)
			fmt.Fprintln(out, info.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newFormatsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "formats URL",
		Short: "List the downloadable MP4 qualities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := argURL(args)
			if err != nil {
				return err
			}

			formats, err := opts.newService(config.NewFileStore("")).VideoFormats(cmd.Context(), url)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if formats == nil {
					formats = []model.VideoFormat{}
				}
				return json.NewEncoder(out).Encode(formats)
			}
			fmt.Fprintf(out, "%-8s %s\n", model.QualityBest, "Best Quality (Default)")
			for _, f := range formats {
				fmt.Fprintf(out, "%-8s %s\n", f.FormatID, f.QualityLabel)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a video",
		Long:  msgDownloadLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := argURL(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := opts.newService(config.NewFileStore(""))
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			bus := svc.Events()
			defer bus.Listen(events.TopicDownloadOutput, func(line string) {
				fmt.Fprintln(out, line)
			})()
			defer bus.Listen(events.TopicDownloadError, func(msg string) {
				fmt.Fprintln(errOut, msg)
			})()

			msg, err := svc.Download(ctx, url, quality)
			if errors.Is(err, backend.ErrDownloadCancelled) {
				fmt.Fprintln(errOut, store.StatusCancelled)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", model.QualityBest, "format id from the formats command, best or worst")
	return cmd
}
