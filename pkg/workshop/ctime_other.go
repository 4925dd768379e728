//go:build !linux

package workshop

import (
	"os"
	"time"
)

// changeTime falls back to the modification time where ctime is not exposed
func changeTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
