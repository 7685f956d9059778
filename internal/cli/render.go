package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytdlp-gui/internal/ansi"
)

const maxRenderLine = 1024 * 1024

func newRenderCmd() *cobra.Command {
	var fallback bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Convert terminal output on stdin to HTML",
		Long:  msgRenderLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			convert := ansi.RenderLine
			if fallback {
				convert = ansi.Colorize
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), maxRenderLine)
			out := cmd.OutOrStdout()
			for scanner.Scan() {
				if _, err := fmt.Fprintln(out, convert(scanner.Text())); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fallback, "fallback", false, "always use the pattern colorizer")
	return cmd
}
