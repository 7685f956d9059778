package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/backend"
	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/logging"
)

// rootOptions holds the persistent flags and the configuration loaded from them
type rootOptions struct {
	version    string
	verbosity  int
	configPath string
	cfg        *config.Config
}

// newService builds a bridge whose download location lives in locations
func (o *rootOptions) newService(locations backend.LocationStore) *backend.Service {
	return backend.NewService(backend.Options{
		YtdlpPath:      o.cfg.Ytdlp.Path,
		ResourcesDir:   o.cfg.Ytdlp.ResourcesDir,
		OutputTemplate: o.cfg.Ytdlp.OutputTemplate,
		AppVersion:     o.version,
		Locations:      locations,
	})
}

// NewRootCmd creates the root command. version is reported by the version command.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "ytdlp-gui",
		Short: msgRootShort,
		Long:  msgRootLong,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/ytdlp-gui/config.toml)")

	rootCmd.AddCommand(
		newGUICmd(opts),
		newServeCmd(opts),
		newRenderCmd(),
		newInfoCmd(opts),
		newFormatsCmd(opts),
		newDownloadCmd(opts),
		newLocationCmd(opts),
		newUpdateCmd(opts),
		newVersionCmd(opts),
	)

	return rootCmd
}
