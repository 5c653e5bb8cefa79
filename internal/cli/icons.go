package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/sitekit/internal/image"
)

// iconRule separates per-file reports.
var iconRule = strings.Repeat("-", 20)

// sizeValue is a WIDTHxHEIGHT flag.
type sizeValue struct {
	width, height int
}

var _ pflag.Value = (*sizeValue)(nil)

func (s *sizeValue) String() string {
	if s.width == 0 && s.height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", s.width, s.height)
}

func (s *sizeValue) Set(v string) error {
	var w, h int
	if _, err := fmt.Sscanf(v, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("want WIDTHxHEIGHT, got %q", v)
	}
	s.width, s.height = w, h
	return nil
}

func (s *sizeValue) Type() string {
	return "size"
}

func (s *sizeValue) isSet() bool {
	return s.width > 0
}

func newIconsCmd(g *globalOptions) *cobra.Command {
	var (
		expect      sizeValue
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "icons <file>...",
		Short: "Report the decoded format and size of icon files",
		Long: `Decode the header of each image and print its format and pixel size.

With --expect, any file whose size differs is reported as an error,
which is handy for checking PWA manifest icons.

Examples:
  sitekit icons img/icon-192.png img/icon-512.png
  sitekit icons --expect 512x512 img/icon-512.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := image.InspectAll(cmd.Context(), args, concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, info := range infos {
				if info.Err != nil {
					fmt.Fprintf(out, "Error checking %s: %v\n", info.Path, info.Err)
					failed++
					continue
				}
				fmt.Fprintf(out, "File: %s\n", info.Name())
				fmt.Fprintf(out, "Format: %s\n", info.Format)
				fmt.Fprintf(out, "Size: (%d, %d)\n", info.Width, info.Height)
				if expect.isSet() && (info.Width != expect.width || info.Height != expect.height) {
					fmt.Fprintf(out, "Error: expected %s\n", expect.String())
					failed++
				}
				fmt.Fprintln(out, iconRule)
			}

			g.logger.Debug("icons checked", "files", len(infos), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed the check", failed, len(infos))
			}
			return nil
		},
	}

	cmd.Flags().Var(&expect, "expect", "required size as WIDTHxHEIGHT")
	cmd.Flags().IntVar(&concurrency, "concurrency", image.DefaultInspectConcurrency, "files inspected at once")

	return cmd
}
