package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/types"
	"github.com/rs/zerolog"
)

// dryRunFS implements types.FS by delegating reads and logging writes
type dryRunFS struct {
	inner  types.FS
	logger zerolog.Logger
}

// NewDryRun wraps inner so that every mutating call is logged and skipped.
func NewDryRun(inner types.FS) types.FS {
	return &dryRunFS{
		inner:  inner,
		logger: logging.GetLogger("filesystem.dryrun"),
	}
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error) {
	return d.inner.Stat(name)
}

func (d *dryRunFS) Lstat(name string) (fs.FileInfo, error) {
	return d.inner.Lstat(name)
}

func (d *dryRunFS) ReadFile(name string) ([]byte, error) {
	return d.inner.ReadFile(name)
}

func (d *dryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.inner.ReadDir(name)
}

func (d *dryRunFS) Readlink(name string) (string, error) {
	return d.inner.Readlink(name)
}

func (d *dryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	d.logger.Info().Str("path", name).Int("bytes", len(data)).Msg("Dry run: would write file")
	return nil
}

func (d *dryRunFS) MkdirAll(path string, perm fs.FileMode) error {
	d.logger.Info().Str("path", path).Msg("Dry run: would create directory")
	return nil
}

func (d *dryRunFS) Symlink(oldname, newname string) error {
	d.logger.Info().Str("target", oldname).Str("link", newname).Msg("Dry run: would create symlink")
	return nil
}

func (d *dryRunFS) Remove(name string) error {
	d.logger.Info().Str("path", name).Msg("Dry run: would remove")
	return nil
}

func (d *dryRunFS) RemoveAll(path string) error {
	d.logger.Info().Str("path", path).Msg("Dry run: would remove tree")
	return nil
}

func (d *dryRunFS) Rename(oldpath, newpath string) error {
	d.logger.Info().Str("from", oldpath).Str("to", newpath).Msg("Dry run: would rename")
	return nil
}
