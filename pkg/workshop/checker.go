package workshop

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/rs/zerolog"
)

// latestUpdatePattern finds the timestamp of the first announcement on a changelog page
var latestUpdatePattern = regexp.MustCompile(`(?s)workshopAnnouncement.*?<p id="(\d+)">`)

// ChangelogSource returns the changelog page of a mod
type ChangelogSource interface {
	Changelog(ctx context.Context, id string) (string, error)
}

// Checker decides whether a downloaded mod is outdated
type Checker struct {
	source     ChangelogSource
	changeTime func(path string) (time.Time, error)
	logger     zerolog.Logger
}

// NewChecker creates a Checker reading changelogs from source
func NewChecker(source ChangelogSource) *Checker {
	return &Checker{
		source:     source,
		changeTime: changeTime,
		logger:     logging.GetLogger("workshop.checker"),
	}
}

// NeedsUpdate reports whether the mod downloaded at path predates the latest
// update published for id. A path that does not exist is not checked and
// reports false; so does a changelog without any announcement.
func (c *Checker) NeedsUpdate(ctx context.Context, id, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrCacheStat, "cannot stat %s", path).WithDetail("path", path)
	}

	local, err := c.changeTime(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCacheStat, "cannot read change time of %s", path).WithDetail("path", path)
	}

	page, err := c.source.Changelog(ctx, id)
	if err != nil {
		return false, err
	}

	remote, ok := LatestUpdate(page)
	if !ok {
		c.logger.Debug().Str("id", id).Msg("No announcement on changelog page")
		return false, nil
	}

	stale := !remote.Before(local)
	c.logger.Debug().
		Str("id", id).
		Time("remote", remote).
		Time("local", local).
		Bool("stale", stale).
		Msg("Compared update times")
	return stale, nil
}

// LatestUpdate returns the time of the first announcement on a changelog page
func LatestUpdate(page string) (time.Time, bool) {
	m := latestUpdatePattern.FindStringSubmatch(page)
	if m == nil {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}
