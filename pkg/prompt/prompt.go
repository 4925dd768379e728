package prompt

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Terminal prompts on a terminal attached to in
type Terminal struct {
	in *os.File
}

// NewTerminal creates a Terminal reading from in, or from stdin when in is nil
func NewTerminal(in *os.File) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	return &Terminal{in: in}
}

// Interactive reports whether prompts can be shown
func (t *Terminal) Interactive() bool {
	fd := t.in.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Choose asks which of names to use and returns its index
func (t *Terminal) Choose(names []string) (int, error) {
	if err := t.ensureInteractive("select a modlist"); err != nil {
		return -1, err
	}

	options := make([]huh.Option[int], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(fmt.Sprintf("%d.) %s", i+1, name), i)
	}

	choice := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select one of the following modlists").
				Options(options...).
				Value(&choice),
		),
	).WithInput(t.in)
	if err := form.Run(); err != nil {
		return -1, formError(err, "modlist selection")
	}

	logger := logging.GetLogger("prompt")
	logger.Debug().Int("choice", choice).Msg("Modlist selected")
	return choice, nil
}

// PromptCredentials asks for a Steam login. username pre-fills the first field.
func (t *Terminal) PromptCredentials(ctx context.Context, username string) (string, string, error) {
	if err := t.ensureInteractive("ask for Steam credentials"); err != nil {
		return "", "", err
	}

	var password string
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Steam login").
				Description("A Steam account owning Arma 3 is required to download the server and its mods."),
			huh.NewInput().
				Title("Steam Username").
				Value(&username).
				Validate(required("username")),
			huh.NewInput().
				Title("Steam Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("password")),
		),
	).WithInput(t.in)
	if err := form.RunWithContext(ctx); err != nil {
		return "", "", formError(err, "credentials prompt")
	}
	return strings.TrimSpace(username), password, nil
}

func (t *Terminal) ensureInteractive(action string) error {
	if t.Interactive() {
		return nil
	}
	return errors.Newf(errors.ErrNotATerminal, "cannot %s: stdin is not a terminal", action)
}

func formError(err error, what string) error {
	if stderrors.Is(err, huh.ErrUserAborted) || stderrors.Is(err, context.Canceled) {
		return errors.Wrapf(err, errors.ErrCancelled, "%s aborted", what)
	}
	return errors.Wrapf(err, errors.ErrInternal, "%s failed", what)
}
