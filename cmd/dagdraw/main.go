package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagdraw/internal/cli"
	dderrors "github.com/matzehuels/dagdraw/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	}

	return root.ExecuteContext(ctx)
}

// exitCode is 2 for errors in the user's input or configuration and 1 for
// everything else.
func exitCode(err error) int {
	switch dderrors.GetCode(err) {
	case dderrors.ErrCodeInvalidInput, dderrors.ErrCodeInvalidFormat, dderrors.ErrCodeInvalidPath,
		dderrors.ErrCodeFileNotFound, dderrors.ErrCodeMalformedGraph:
		return 2
	}
	if dderrors.IsConfiguration(err) {
		return 2
	}
	return 1
}
