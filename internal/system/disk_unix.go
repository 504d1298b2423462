//go:build !windows

package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func freeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat filesystem at %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
