package servercfg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/types"
)

// DefaultModsPrefix is the mods directory as seen from the server directory
const DefaultModsPrefix = "mods"

var modsLinePattern = regexp.MustCompile(`mods=".*"`)

// specialChars are the regex metacharacters and whitespace quoted in mod keys
const specialChars = "()[]{}?*+-|^$\\.&~# \t\n\r\v\f"

// Escape backslash-quotes every special character of key
func Escape(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(specialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ModsLine renders the mods line loading keys, in order, from prefix
func ModsLine(prefix string, keys []string) string {
	if prefix == "" {
		prefix = DefaultModsPrefix
	}
	prefix = strings.TrimRight(prefix, "/")

	var b strings.Builder
	b.WriteString(`mods="`)
	for _, k := range keys {
		b.WriteString(prefix)
		b.WriteByte('/')
		b.WriteString(Escape(k))
		b.WriteByte(';')
	}
	b.WriteString(`";`)
	return b.String()
}

// Patch replaces the first line of content containing a mods="..." setting
// with line, keeping that line's terminator. Without such a line, line is
// appended, separated by a blank line when the last line has text.
func Patch(content, line string) string {
	lines := splitLines(content)

	for i, l := range lines {
		body, eol := cutEOL(l)
		if modsLinePattern.MatchString(body) {
			lines[i] = line + eol
			return strings.Join(lines, "")
		}
	}

	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
		lines = append(lines, "\n"+line+"\n")
	} else {
		lines = append(lines, line)
	}
	return strings.Join(lines, "")
}

// PatchFile applies Patch to the file at path, creating it (and its
// directory) with just the line when it does not exist. It reports whether
// the file changed.
func PatchFile(fsys types.FS, path, line string) (bool, error) {
	logger := logging.GetLogger("servercfg")

	perm := os.FileMode(0644)
	var updated string

	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := fsys.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
		updated = Patch(string(data), line)
		if updated == string(data) {
			logger.Debug().Str("path", path).Msg("Server config already up to date")
			return false, nil
		}
	case os.IsNotExist(err):
		logger.Warn().Str("path", path).Msg("Server config does not exist, creating it")
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(path))
		}
		updated = line + "\n"
	default:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read server config %s", path)
	}

	if err := fsys.WriteFile(path, []byte(updated), perm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write server config %s", path).
			WithDetail("path", path)
	}
	logger.Info().Str("path", path).Msg("Server config updated")
	return true, nil
}

// splitLines splits s after every "\n", keeping terminators
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// cutEOL separates a line from its "\n" or "\r\n" terminator
func cutEOL(line string) (string, string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
