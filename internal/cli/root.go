// Package cli provides the command-line interface for sitekit.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/sitekit/internal/config"
	"github.com/jmylchreest/sitekit/internal/version"
)

// globalOptions holds persistent flags and the state derived from them.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string

	logger hclog.Logger
	config *config.Config
}

// NewRootCmd builds the sitekit command tree. Each call returns an
// independent tree so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "sitekit",
		Short: "Maintenance tools for the website",
		Long: `sitekit bundles the one-off maintenance tasks for the website:
extracting brand colours from artwork, checking icon files, injecting
PWA script tags into every page, and smoke-testing the backend endpoints.

Each subcommand runs once, prints its findings and exits.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./"+config.DefaultPath+" if present)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newColoursCmd(opts),
		newBrandCmd(opts),
		newHeaderCmd(opts),
		newIconsCmd(opts),
		newInjectCmd(opts),
		newSmokeCmd(opts),
	)

	return rootCmd
}

// init builds the logger and loads configuration once flags are parsed.
func (o *globalOptions) init(cmd *cobra.Command) error {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}

	o.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "sitekit",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	path, required := o.configPath, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	o.config = cfg
	o.logger.Debug("configuration loaded", "path", path)

	return nil
}

// isTerminal reports whether w is a terminal, for auto-disabling ANSI output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		// Version needs neither config nor logging.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
