package process

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/rs/zerolog"
)

const redactedArg = "********"

// Command describes one program invocation
type Command struct {
	Path string
	Args []string
	// Dir is the working directory; empty means the current one
	Dir string
	// Secrets are argument values that must never be logged
	Secrets []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Redacted returns the arguments with every secret replaced
func (c Command) Redacted() []string {
	out := make([]string, len(c.Args))
	for i, arg := range c.Args {
		out[i] = arg
		for _, s := range c.Secrets {
			if s != "" && arg == s {
				out[i] = redactedArg
				break
			}
		}
	}
	return out
}

// String renders the command line for display, secrets redacted
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Redacted()...), " ")
}

// Runner executes Commands
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec, attached to the terminal unless the
// Command supplies its own streams
type ExecRunner struct {
	// WaitDelay bounds how long a cancelled process may take to exit
	WaitDelay time.Duration
	logger    zerolog.Logger
}

// NewExecRunner creates an ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		WaitDelay: 10 * time.Second,
		logger:    logging.GetLogger("process"),
	}
}

// Run starts the command and waits for it. Cancelling ctx sends SIGINT so
// the program can shut down cleanly before it is killed.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = pick(c.Stdin, os.Stdin)
	cmd.Stdout = pickWriter(c.Stdout, os.Stdout)
	cmd.Stderr = pickWriter(c.Stderr, os.Stderr)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.WaitDelay

	logging.LogCommand(c.Path, c.Redacted())
	r.logger.Debug().Str("dir", c.Dir).Str("path", c.Path).Msg("Starting process")

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug().
		Str("path", c.Path).
		Int("exit_code", ExitCode(err)).
		Dur("duration", time.Since(start)).
		Msg("Process finished")
	return err
}

// ExitCode extracts the exit status from an error returned by Run. It
// returns 0 for nil and -1 when the process never produced a status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func pick(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func pickWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
