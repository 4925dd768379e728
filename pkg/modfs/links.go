package modfs

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/types"
)

// Layout locates downloads and links
type Layout interface {
	ModsDir() string
	CacheDir(id string) string
	LinkPath(key string) string
}

// LinkResult reports what CreateLinks did for each mod key
type LinkResult struct {
	Created []string `json:"created" yaml:"created"`
	Missing []string `json:"missing" yaml:"missing"`
	Failed  []string `json:"failed" yaml:"failed"`
}

// RemoveLinks deletes every symlink directly inside dir, creating dir when
// it does not exist. Regular files and directories are left alone. A link
// that cannot be removed is reported and skipped.
func RemoveLinks(fsys types.FS, dir string) ([]string, error) {
	logger := logging.GetLogger("modfs.links")

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create mods directory %s", dir)
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Only possible when fsys skips writes
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list mods directory %s", dir)
	}

	var removed []string
	for _, e := range entries {
		if e.Type()&os.ModeSymlink == 0 {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := fsys.Remove(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot delete old symlink")
			continue
		}
		logger.Info().Str("path", path).Msg("Deleted old symlink")
		removed = append(removed, path)
	}
	return removed, nil
}

// CreateLinks links every mod of list whose download exists to its key in
// the mods directory. Mods without a download and links that cannot be
// created are reported in the result; neither stops the pass.
func CreateLinks(fsys types.FS, layout Layout, list *modlist.List) LinkResult {
	logger := logging.GetLogger("modfs.links")
	var result LinkResult

	for _, e := range list.Entries() {
		target := layout.CacheDir(e.ID)
		link := layout.LinkPath(e.Key)

		info, err := fsys.Stat(target)
		if err != nil || !info.IsDir() {
			logger.Warn().Str("mod", e.Key).Str("path", target).Msg("Mod does not exist")
			result.Missing = append(result.Missing, e.Key)
			continue
		}

		if existing, err := fsys.Lstat(link); err == nil && existing.Mode()&os.ModeSymlink != 0 {
			logger.Debug().Str("link", link).Msg("Symlink already present")
			result.Created = append(result.Created, e.Key)
			continue
		}

		if err := fsys.Symlink(target, link); err != nil {
			logger.Warn().Err(err).Str("mod", e.Key).Str("link", link).Msg("Cannot create symlink")
			result.Failed = append(result.Failed, e.Key)
			continue
		}
		logger.Info().Str("link", link).Str("target", target).Msg("Created symlink")
		result.Created = append(result.Created, e.Key)
	}
	return result
}

// Relink rebuilds the link set: old links in the mods directory are removed,
// then one link per available mod of list is created
func Relink(fsys types.FS, layout Layout, list *modlist.List) (LinkResult, error) {
	if _, err := RemoveLinks(fsys, layout.ModsDir()); err != nil {
		return LinkResult{}, err
	}
	return CreateLinks(fsys, layout, list), nil
}
