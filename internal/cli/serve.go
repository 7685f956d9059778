package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/store"
	"github.com/ytget/ytdlp-gui/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser front-end over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.Web.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := opts.newService(config.NewFileStore(""))
			srv := web.NewServer(svc)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx, addr)
			})
			g.Go(func() error {
				probeYtdlp(gctx, svc)
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from web.addr)")
	return cmd
}

// probeYtdlp logs which yt-dlp the server will use
func probeYtdlp(ctx context.Context, versions store.VersionProvider) {
	info, err := versions.YtdlpVersion(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("yt-dlp is not available; downloads will fail")
		return
	}
	log.Info().Str("version", info.Version).Str("source", string(info.Source)).Msg("Using yt-dlp")
}
