package server

import (
	"context"
	"strconv"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/paths"
	"github.com/arthur-debert/a3update/pkg/process"
	"github.com/rs/zerolog"
)

// Launcher starts the dedicated server
type Launcher struct {
	runner process.Runner
	paths  paths.Paths
	server config.Server
	logger zerolog.Logger
}

// New creates a Launcher
func New(runner process.Runner, p paths.Paths, server config.Server) *Launcher {
	return &Launcher{
		runner: runner,
		paths:  p,
		server: server,
		logger: logging.GetLogger("server"),
	}
}

// Args returns the server command line. Arguments are passed without a
// shell, so paths are not quoted.
func (l *Launcher) Args() []string {
	args := []string{
		"-cfg=" + l.paths.BasicConfig(),
		"-config=" + l.paths.ServerConfig(),
	}
	if l.server.Name != "" {
		args = append(args, "-name="+l.server.Name)
	}
	if l.server.World != "" {
		args = append(args, "-world="+l.server.World)
	}
	if l.server.Port > 0 {
		args = append(args, "-port="+strconv.Itoa(l.server.Port))
	}
	return append(args, l.server.ExtraArgs...)
}

// Command returns the process the launcher runs
func (l *Launcher) Command() process.Command {
	return process.Command{
		Path: l.paths.ServerBinary(),
		Args: l.Args(),
		Dir:  l.paths.ServerDir(),
	}
}

// Start runs the server until it exits or ctx is cancelled
func (l *Launcher) Start(ctx context.Context) error {
	done := logging.LogOperationStart(l.logger, "start server")
	defer done()

	cmd := l.Command()
	l.logger.Info().Str("binary", cmd.Path).Str("dir", cmd.Dir).Msg("Starting server")

	err := l.runner.Run(ctx, cmd)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		l.logger.Info().Msg("Server stopped by signal")
		return nil
	}

	code := process.ExitCode(err)
	return errors.Wrapf(err, errors.ErrServerLaunch, "server exited with code %d", code).
		WithDetail("exit_code", code).
		WithDetail("command", cmd.String())
}
