package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/sitekit/internal/inject"
)

func newInjectCmd(g *globalOptions) *cobra.Command {
	var (
		scripts []string
		marker  string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "inject <root>",
		Short: "Add PWA script tags to every HTML page under a directory",
		Long: `Walk <root> and insert script tags before </body> in every .html file.

Sources default to root-absolute paths (/pwa-install.js) so pages in
subdirectories load the same files. Files that already mention the
marker are skipped, which makes repeated runs safe.

Examples:
  sitekit inject .
  sitekit inject --dry-run site/
  sitekit inject --script /analytics.js --marker analytics.js site/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := inject.Options{
				Scripts: g.config.Inject.Scripts,
				Marker:  g.config.Inject.Marker,
				DryRun:  dryRun,
			}
			if cmd.Flags().Changed("script") {
				opts.Scripts = scripts
			}
			if cmd.Flags().Changed("marker") {
				opts.Marker = marker
			}

			injector, err := inject.New(opts, g.logger.Named("inject"))
			if err != nil {
				return err
			}

			results, err := injector.Run(args[0])
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(out, r.String())
			}
			if err != nil {
				return err
			}

			counts := inject.Summary(results)
			g.logger.Info("injection finished",
				"updated", counts[inject.ActionUpdated],
				"already_present", counts[inject.ActionAlreadyPresent],
				"no_body", counts[inject.ActionNoBody],
				"dry_run", dryRun)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&scripts, "script", nil, "script src to add (repeatable; default from config)")
	cmd.Flags().StringVar(&marker, "marker", "", "text whose presence marks a file as done (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")

	return cmd
}
