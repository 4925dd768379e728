package modfs

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowercaseStats counts the outcome of a lowercase pass
type LowercaseStats struct {
	Renamed   int `json:"renamed" yaml:"renamed"`
	Conflicts int `json:"conflicts" yaml:"conflicts"`
	Failed    int `json:"failed" yaml:"failed"`
}

type lowercaser struct {
	fs     types.FS
	caser  cases.Caser
	stats  LowercaseStats
	logger zerolog.Logger
}

// LowercaseTree renames every file and directory below root to lowercase,
// deepest entries first so parent paths stay valid. root itself keeps its
// name. Entries that cannot be renamed, or whose lowercase name is already
// taken, are left as they are. A missing root is not an error.
func LowercaseTree(fsys types.FS, root string) (LowercaseStats, error) {
	l := &lowercaser{
		fs:     fsys,
		caser:  cases.Lower(language.Und),
		logger: logging.GetLogger("modfs.lowercase"),
	}
	done := logging.LogOperationStart(l.logger, "lowercase")
	defer done()

	if _, err := fsys.Stat(root); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn().Str("path", root).Msg("Workshop directory does not exist, nothing to lowercase")
			return l.stats, nil
		}
		return l.stats, err
	}

	l.walk(root)

	l.logger.Info().
		Int("renamed", l.stats.Renamed).
		Int("conflicts", l.stats.Conflicts).
		Int("failed", l.stats.Failed).
		Msg("Lowercase pass complete")
	return l.stats, nil
}

func (l *lowercaser) walk(dir string) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		l.stats.Failed++
		l.logger.Debug().Err(err).Str("path", dir).Msg("Cannot list directory")
		return
	}

	// Children first; symlinks are not followed
	for _, e := range entries {
		if e.IsDir() {
			l.walk(filepath.Join(dir, e.Name()))
		}
	}
	for _, e := range entries {
		l.rename(dir, e.Name())
	}
}

func (l *lowercaser) rename(dir, name string) {
	lower := l.caser.String(name)
	if lower == name {
		return
	}

	from := filepath.Join(dir, name)
	to := filepath.Join(dir, lower)
	if _, err := l.fs.Lstat(to); err == nil {
		l.stats.Conflicts++
		l.logger.Debug().Str("path", from).Msg("Lowercase name already exists, leaving as is")
		return
	}

	if err := l.fs.Rename(from, to); err != nil {
		l.stats.Failed++
		l.logger.Debug().Err(err).Str("path", from).Msg("Rename failed")
		return
	}
	l.stats.Renamed++
	l.logger.Trace().Str("from", from).Str("to", to).Msg("Renamed")
}
