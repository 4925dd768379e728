package modlist

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
)

// HTMLSuffix is the only extension accepted for a preset
const HTMLSuffix = ".html"

// Chooser picks one of several preset files. It returns the index of the
// chosen name; an index outside names is rejected by Select.
type Chooser interface {
	Choose(names []string) (int, error)
}

// ChooserFunc adapts a function to the Chooser interface
type ChooserFunc func(names []string) (int, error)

// Choose calls f
func (f ChooserFunc) Choose(names []string) (int, error) {
	return f(names)
}

// Discover returns the regular files of dir, sorted by name. Symlinks
// count when they resolve to a regular file.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrModlistDirMissing, "modlist directory does not exist: %s", dir).
				WithDetail("dir", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrModlistRead, "cannot list modlist directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return nil, errors.Newf(errors.ErrModlistDirEmpty, "no modlist html files found in %s", dir).
			WithDetail("dir", dir)
	}

	sort.Strings(files)
	return files, nil
}

// Select discovers the presets in dir and returns the one to use. A single
// file is taken without asking; otherwise chooser decides.
func Select(dir string, chooser Chooser) (string, error) {
	logger := logging.GetLogger("modlist")

	files, err := Discover(dir)
	if err != nil {
		return "", err
	}

	idx := 0
	if len(files) > 1 {
		if chooser == nil {
			return "", errors.Newf(errors.ErrModlistSelection, "%d modlists found and no way to choose", len(files)).
				WithDetail("count", len(files))
		}
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = filepath.Base(f)
		}
		idx, err = chooser.Choose(names)
		if err != nil {
			return "", err
		}
	}
	if idx < 0 || idx >= len(files) {
		return "", errors.Newf(errors.ErrModlistSelection, "invalid selection %d", idx+1).
			WithDetail("count", len(files))
	}

	selected := files[idx]
	if err := CheckHTML(selected); err != nil {
		return "", err
	}

	logger.Info().Str("file", selected).Int("candidates", len(files)).Msg("Modlist selected")
	return selected, nil
}

// CheckHTML rejects paths that do not end in .html
func CheckHTML(path string) error {
	if filepath.Ext(path) != HTMLSuffix {
		return errors.Newf(errors.ErrModlistNotHTML, "%s is not an HTML file", path).
			WithDetail("file", path)
	}
	return nil
}

// Resolve returns file when it is set and names a preset, otherwise the
// preset Select picks from dir
func Resolve(file, dir string, chooser Chooser) (string, error) {
	if file == "" {
		return Select(dir, chooser)
	}
	if err := CheckHTML(file); err != nil {
		return "", err
	}
	return file, nil
}
