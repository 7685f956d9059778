package cli

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/store"
	"github.com/ytget/ytdlp-gui/internal/ui"
)

// AppID identifies the application to fyne preferences storage
const AppID = "com.ytget.ytdlp-gui"

func newGUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}
}

func runGUI(opts *rootOptions) error {
	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(a)
	svc := opts.newService(settings)

	window := a.NewWindow(store.AppTitle)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewRootUI(window, svc, settings, ui.Options{
		MaxOutputLines:   opts.cfg.UI.MaxOutputLines,
		FetchDebounce:    opts.cfg.UI.FetchDebounce,
		ClearOutputAfter: opts.cfg.UI.ClearOutputAfter,
	})

	window.ShowAndRun()
	return nil
}
