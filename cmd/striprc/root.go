package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/striprc/cmd/striprc/commands"
	"github.com/walteh/striprc/cmd/striprc/opts"
)

// newRootCmd creates the striprc command tree. Running it without a subcommand is the same as run.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "striprc",
		Short: "Strip code patterns from many files at once",
		Long: `striprc applies an ordered list of regular expression rules to every matching
file under a root directory, writes back only the files that changed, and points
out leftovers that still need a manual edit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(o.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Execute(cmd.Context(), o, afero.NewOsFs(), cmd.OutOrStdout(), false)
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewCheckCmd(o),
		commands.NewPresetsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: first .striprc.{hcl,yaml,yml,json} in the working directory)")
	flags.StringVar(&o.Root, "root", "", "directory to search (default: config root or working directory)")
	flags.StringSliceVar(&o.Include, "include", nil, "include glob relative to root, repeatable")
	flags.StringSliceVar(&o.Exclude, "exclude", nil, "skip paths containing this substring, repeatable")
	flags.StringVar(&o.Preset, "preset", "", "built-in rule set to run before configured rules")
	flags.BoolVar(&o.DryRun, "dry-run", false, "report changes without writing files")
	flags.BoolVar(&o.Diff, "diff", false, "print a diff for every changed file")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "also list unchanged files")
	flags.BoolVar(&o.Strict, "strict", false, "exit non-zero when any file fails")
	flags.BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
