package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/striprc/cmd/striprc/opts"
	"github.com/walteh/striprc/pkg/config"
	"github.com/walteh/striprc/pkg/log"
	"github.com/walteh/striprc/pkg/operation"
	"github.com/walteh/striprc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned in strict mode when at least one file could not be processed
var ErrFilesFailed = errors.Base("one or more files failed")

// NewRunCmd creates a new run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Strip configured patterns from matching files",
		Long: `Run applies every configured rule to each file under the root that matches
the include globs and is not excluded. It will:
1. Discover candidate files
2. Apply the rules to each file in order
3. Write back files whose content changed
4. Report leftover references that need a manual look`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), o, afero.NewOsFs(), cmd.OutOrStdout(), false)
		},
	}

	return cmd
}

// 🚀 Execute loads the configuration, runs the stripper and prints the summary.
// A run where files errored still succeeds unless strict mode is on.
func Execute(ctx context.Context, o *opts.RootOpts, fs afero.Fs, out io.Writer, forceDryRun bool) error {
	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return err
	}
	if forceDryRun {
		cfg.DryRun = true
		cfg.Diff = true
	}

	// console lines already go to out, the structured copy is only wanted when debugging
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	ctx = log.NewContext(ctx, log.New(out, level))

	report, err := strip(ctx, cfg, fs)
	if err != nil {
		return err
	}

	if o.Strict && report.ErrorCount() > 0 {
		return errors.Errorf("%d of %d files: %w", report.ErrorCount(), report.Discovered, ErrFilesFailed)
	}
	return nil
}

// strip runs the stripper with the console logger carried by ctx and prints the summary
func strip(ctx context.Context, cfg *config.Config, fs afero.Fs) (*status.Report, error) {
	logger := log.FromContext(ctx)

	stripper, err := operation.New(operation.Options{
		Config: cfg,
		Fs:     fs,
		Logger: logger,
	})
	if err != nil {
		return nil, errors.Errorf("creating stripper: %w", err)
	}

	report, err := stripper.Run(ctx)
	if report != nil {
		logger.LogNewline()
		logger.Raw(status.FormatSummary(report))
	}
	if err != nil {
		return nil, errors.Errorf("running: %w", err)
	}
	return report, nil
}
