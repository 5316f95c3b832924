package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/internal/cli"
	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// Exit codes. Scripts driving batch layouts can tell bad input from
// lineages that merge and from everything else.
const (
	exitFailure   = 1
	exitBadInput  = 2
	exitNonForest = 3
	exitCancelled = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != exitCancelled {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every draw call and sort decision")

	// The level must be set before the CLI's own pre-run hook loads the config.
	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitCancelled
	case gerrors.Is(err, gerrors.ErrCodeNonForestInput):
		return exitNonForest
	case gerrors.Is(err, gerrors.ErrCodeInvalidInput),
		gerrors.Is(err, gerrors.ErrCodeInvalidConfig),
		gerrors.Is(err, gerrors.ErrCodeInvalidFormat),
		gerrors.Is(err, gerrors.ErrCodeInvalidStrategy),
		gerrors.Is(err, gerrors.ErrCodeInvalidVertexID),
		gerrors.Is(err, gerrors.ErrCodeFileNotFound),
		gerrors.Is(err, gerrors.ErrCodeAnchorNotFound),
		gerrors.Is(err, gerrors.ErrCodeVertexNotFound):
		return exitBadInput
	}
	return exitFailure
}
