// Package fsutil holds small filesystem helpers shared by the registry, the
// manager and the command line.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// TotalSize returns the combined size of the given files. Empty paths are
// skipped; the first stat failure is returned.
func TotalSize(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		fi, err := os.Stat(p)
		if err != nil {
			return 0, err
		}
		total += fi.Size()
	}
	return total, nil
}

// SizeMB rounds n bytes up to whole megabytes, with a floor of 1 so an
// unknown or empty file never bypasses budget checks.
func SizeMB(n int64) int {
	const mb = 1 << 20
	if n <= 0 {
		return 1
	}
	return int((n + mb - 1) / mb)
}

// IsNotExist reports whether err says a file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
