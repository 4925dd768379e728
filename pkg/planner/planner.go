package planner

import (
	"context"
	"os"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/types"
	"github.com/rs/zerolog"
)

// Checker reports whether the download at path is older than the latest update of id
type Checker interface {
	NeedsUpdate(ctx context.Context, id, path string) (bool, error)
}

// Layout locates the download directory of a mod
type Layout interface {
	CacheDir(id string) string
}

// Plan is the outcome of one planning pass. Outdated holds every mod to
// fetch; the key slices say why each mod was or was not included.
type Plan struct {
	Outdated  *modlist.List `json:"-" yaml:"-"`
	Missing   []string      `json:"missing" yaml:"missing"`
	Stale     []string      `json:"stale" yaml:"stale"`
	Fresh     []string      `json:"fresh" yaml:"fresh"`
	Unchecked []string      `json:"unchecked" yaml:"unchecked"`
}

// Empty reports whether nothing needs fetching
func (p *Plan) Empty() bool {
	return p.Outdated.Len() == 0
}

// Planner builds Plans
type Planner struct {
	fs      types.FS
	checker Checker
	layout  Layout
	logger  zerolog.Logger
}

// New creates a Planner. Evictions go through fsys, so a dry-run
// filesystem yields a plan without touching any download.
func New(fsys types.FS, checker Checker, layout Layout) *Planner {
	return &Planner{
		fs:      fsys,
		checker: checker,
		layout:  layout,
		logger:  logging.GetLogger("planner"),
	}
}

// Plan walks list in order and classifies each mod. Stale downloads are
// removed before the mod is added to the plan. A failed check leaves the
// download alone and the mod out of the plan.
func (p *Planner) Plan(ctx context.Context, list *modlist.List) (*Plan, error) {
	done := logging.LogOperationStart(p.logger, "plan")
	defer done()

	plan := &Plan{Outdated: &modlist.List{}}

	for _, entry := range list.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "planning cancelled")
		}

		cacheDir := p.layout.CacheDir(entry.ID)
		logger := p.logger.With().Str("mod", entry.Key).Str("id", entry.ID).Logger()

		if _, err := p.fs.Stat(cacheDir); err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, errors.ErrCacheStat, "cannot stat %s", cacheDir).
					WithDetail("mod", entry.Key)
			}
			logger.Info().Msg("Mod not downloaded")
			plan.Outdated.Set(entry.Key, entry.ID)
			plan.Missing = append(plan.Missing, entry.Key)
			continue
		}

		stale, err := p.checker.NeedsUpdate(ctx, entry.ID, cacheDir)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrap(err, errors.ErrCancelled, "planning cancelled")
			}
			logger.Warn().Err(err).Msg("Update check failed, keeping current download")
			plan.Unchecked = append(plan.Unchecked, entry.Key)
			continue
		}

		if !stale {
			logger.Info().Msg("No update required, skipping")
			plan.Fresh = append(plan.Fresh, entry.Key)
			continue
		}

		logger.Info().Str("path", cacheDir).Msg("Update required, evicting download")
		if err := p.fs.RemoveAll(cacheDir); err != nil {
			return nil, errors.Wrapf(err, errors.ErrCacheEvict, "cannot remove outdated download %s", cacheDir).
				WithDetail("mod", entry.Key).
				WithDetail("path", cacheDir)
		}
		plan.Outdated.Set(entry.Key, entry.ID)
		plan.Stale = append(plan.Stale, entry.Key)
	}

	p.logger.Debug().
		Int("outdated", plan.Outdated.Len()).
		Int("fresh", len(plan.Fresh)).
		Int("unchecked", len(plan.Unchecked)).
		Msg("Plan ready")
	return plan, nil
}
