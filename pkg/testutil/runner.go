package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/a3update/pkg/process"
)

// RecordingRunner implements process.Runner by recording every command.
// Results are served in order from Results; once exhausted, runs succeed.
type RecordingRunner struct {
	mu       sync.Mutex
	Commands []process.Command
	Results  []error
	// OnRun, when set, is called for every command before the result is returned
	OnRun func(cmd process.Command)
}

// NewRecordingRunner creates a runner returning results in order
func NewRecordingRunner(results ...error) *RecordingRunner {
	return &RecordingRunner{Results: results}
}

// Run records cmd
func (r *RecordingRunner) Run(ctx context.Context, cmd process.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, cmd)
	if r.OnRun != nil {
		r.OnRun(cmd)
	}
	if len(r.Results) == 0 {
		return nil
	}
	err := r.Results[0]
	r.Results = r.Results[1:]
	return err
}

// Last returns the most recent command, or the zero Command
func (r *RecordingRunner) Last() process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Commands) == 0 {
		return process.Command{}
	}
	return r.Commands[len(r.Commands)-1]
}

// Count returns how many commands ran
func (r *RecordingRunner) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Commands)
}
