// Package appshell turns a RunContext-style entry point into a process with a
// signal-aware context and exit code normalisation.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Runner is the signature shared by the app packages.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// ExitInterrupted is returned when a signal canceled the run.
const ExitInterrupted = 130

func Main(run Runner) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec runs run under a context canceled by SIGINT or SIGTERM. A second
// signal restores the default handler, so it kills the process outright.
func Exec(run Runner, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code != 2 {
		code = ExitInterrupted
	}
	return code
}
