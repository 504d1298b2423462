package contract

import (
	"context"

	"hanoibak/internal/rotation"
)

// Mounter defines the interface for attaching and detaching the backup
// volume. This allows mocking in tests while keeping the real
// implementation a thin wrapper around the external mount/umount commands.
type Mounter interface {
	// Mount attaches the device at the given mount point, creating the
	// mount point directory if needed.
	Mount(ctx context.Context, device, mountpoint string) error

	// Unmount detaches whatever is mounted at the given mount point.
	Unmount(ctx context.Context, mountpoint string) error
}

// Syncer defines the interface for copying source trees into a slot
// directory. The returned count is bytes transferred, 0 when unknown.
type Syncer interface {
	Sync(ctx context.Context, sources []string, dest string, mode rotation.VerifyMode) (int64, error)
}

// Disk defines the interface for filesystem capacity queries.
type Disk interface {
	// FreeBytes reports the bytes available to unprivileged users on the
	// filesystem holding path.
	FreeBytes(path string) (uint64, error)
}
