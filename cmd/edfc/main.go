// Command edfc is the fleet carrier cargo companion.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexzk1/ed-fc-companion/internal/cli"
	"github.com/alexzk1/ed-fc-companion/pkg/version"
)

// exitInterrupted is the conventional status after SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command and returns the process exit status.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(ctx))
}

// exitCode maps a command error to an exit status. Cobra has already
// printed the error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}
