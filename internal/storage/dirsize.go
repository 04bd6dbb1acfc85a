// Package storage measures on-disk usage of node record stores.
package storage

import (
	"os"
	"path/filepath"

	"github.com/dm/antmon/internal/logger"
)

// DirSize returns the total size in bytes of all regular files under path,
// recursing into subdirectories. Entries that cannot be stat'ed and subtrees
// that cannot be listed are logged and skipped, so a partial failure
// undercounts instead of aborting. Symlinks and other non-regular entries are
// neither followed nor counted. If path is itself a regular file, its size is
// returned directly. Only a failure on path itself is returned as an error.
func DirSize(path string, log logger.Logger) (uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	if info.Mode().IsRegular() {
		return uint64(info.Size()), nil
	}
	if !info.IsDir() {
		return 0, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())
		info, err := entry.Info()
		if err != nil {
			log.Warn("skipping %s: %v", entryPath, err)
			continue
		}

		switch {
		case info.IsDir():
			size, err := DirSize(entryPath, log)
			if err != nil {
				// An unreadable subtree undercounts the total
				// rather than failing the whole walk.
				log.Warn("skipping subtree %s: %v", entryPath, err)
				continue
			}
			total += size
		case info.Mode().IsRegular():
			total += uint64(info.Size())
		}
	}
	return total, nil
}
