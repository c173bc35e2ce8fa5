// Command doorpanels lays out decorative door panels from the command line.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/doorpanels/internal/cli"
	"github.com/matzehuels/doorpanels/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).Execute(ctx)
	stop()

	code := exitCode(err)
	if code != 0 && code != exitInterrupted {
		fmt.Fprintln(os.Stderr, "Error:", message(err))
	}
	os.Exit(code)
}

const (
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

// exitCode maps an error to a process status: 2 for rejected input, 130
// after Ctrl-C, 1 for anything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsValidation(err):
		return exitBadInput
	case stderrors.Is(err, context.Canceled):
		return exitInterrupted
	}
	return exitFailure
}

// message prefixes coded errors with their code, e.g.
// "INVALID_DOOR: door.width must be positive, got -1".
func message(err error) string {
	if code := errors.GetCode(err); code != "" {
		return string(code) + ": " + errors.UserMessage(err)
	}
	return err.Error()
}
