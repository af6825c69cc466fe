package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/errors"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Values are usually injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the collagepack CLI and returns an error if any command fails.
// The error is printed to stderr first, unless ctx was cancelled.
// Cancelling ctx stops a running layout.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context) error {
	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an Execute error to a process exit status: 0 on success,
// 130 when interrupted, 2 when the input must be fixed, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, context.Canceled) {
		return 130
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAlgorithm, errors.ErrCodeInvalidPaperSize,
		errors.ErrCodeInvalidFormat, errors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "collagepack",
		Short:         "collagepack lays out photo collages on printable pages",
		Long:          `collagepack packs a pool of images onto a page with one of five layout algorithms, scaling the pool to fill the page while keeping as many images as possible.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("collagepack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPapersCmd())

	return root
}
