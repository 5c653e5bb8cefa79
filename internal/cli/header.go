package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sitekit/internal/image"
)

func newHeaderCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "header <file>...",
		Short: "Identify image files by their magic bytes",
		Long: `Print the first bytes of each file in hex and the format they indicate.

This does not decode the image, so it also works on files that are
truncated or mislabelled (e.g. a WebP saved as icon.png).

Examples:
  sitekit header img/pwa-icon.png
  sitekit header img/*.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(out, "File: %s\n", path)
				}
				h, err := image.ReadHeader(path)
				if err != nil {
					g.logger.Debug("header read failed", "path", path, "error", err)
					fmt.Fprintf(out, "Error: %v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(out, "Header: %s\n", h.Hex())
				fmt.Fprintf(out, "Format: %s\n", h.Format)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}
