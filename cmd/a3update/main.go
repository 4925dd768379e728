package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/a3update/internal/cli"
)

func main() {
	// SteamCMD and the server get the interrupt too; the context lets the
	// run stop between steps
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.RenderError(rootCmd, err)
		stop()
		os.Exit(1)
	}
}
