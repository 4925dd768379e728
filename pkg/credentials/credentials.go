package credentials

import (
	"context"
	"strings"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/steamcmd"
	"github.com/rs/zerolog"
)

// Prompter asks the operator for a login; username may pre-fill the form
type Prompter interface {
	PromptCredentials(ctx context.Context, username string) (string, string, error)
}

// Source hands out the same credentials for the whole run
type Source struct {
	steam    config.Steam
	prompter Prompter
	cached   *steamcmd.Credentials
	logger   zerolog.Logger
}

// New creates a Source. A nil prompter makes missing credentials fatal.
func New(steam config.Steam, prompter Prompter) *Source {
	return &Source{
		steam:    steam,
		prompter: prompter,
		logger:   logging.GetLogger("credentials"),
	}
}

// Get returns the configured credentials, prompting at most once when
// either value is missing
func (s *Source) Get(ctx context.Context) (steamcmd.Credentials, error) {
	if s.cached != nil {
		return *s.cached, nil
	}

	creds := steamcmd.Credentials{
		Username: strings.TrimSpace(s.steam.Username),
		Password: s.steam.Password,
	}
	if creds.Username != "" && creds.Password != "" {
		s.logger.Debug().Str("username", creds.Username).Msg("Using configured Steam credentials")
		s.cached = &creds
		return creds, nil
	}

	if s.prompter == nil {
		return steamcmd.Credentials{}, missingError(nil)
	}

	s.logger.Info().Msg("Steam credentials not configured, prompting")
	user, pass, err := s.prompter.PromptCredentials(ctx, creds.Username)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCancelled) {
			return steamcmd.Credentials{}, err
		}
		return steamcmd.Credentials{}, missingError(err)
	}
	if user == "" || pass == "" {
		return steamcmd.Credentials{}, missingError(nil)
	}

	creds = steamcmd.Credentials{Username: user, Password: pass}
	s.cached = &creds
	return creds, nil
}

func missingError(cause error) error {
	msg := "Steam credentials required: set " + config.EnvSteamUsername + " and " + config.EnvSteamPassword
	if cause == nil {
		return errors.New(errors.ErrCredentials, msg)
	}
	return errors.Wrap(cause, errors.ErrCredentials, msg)
}
