// Package system implements the host-level capabilities a backup run needs:
// attaching the destination device and measuring free disk space on it.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"hanoibak/internal/logging"

	"github.com/rs/zerolog"
)

const (
	mountCmd  = "mount"
	umountCmd = "umount"

	defaultSettleDelay = 2 * time.Second
)

// execCommand is swapped out in tests.
var execCommand = exec.CommandContext

// Mounter attaches and detaches the backup device using the external mount
// and umount commands. Unlike the syscall, the mount command picks up
// defaults for the device from /etc/fstab.
type Mounter struct {
	settleDelay time.Duration
	logger      zerolog.Logger
}

func NewMounter() *Mounter {
	return &Mounter{
		settleDelay: defaultSettleDelay,
		logger:      logging.GetLogger("system"),
	}
}

func (m *Mounter) Mount(ctx context.Context, device, mountpoint string) error {
	if err := os.MkdirAll(mountpoint, 0o755); err != nil {
		return fmt.Errorf("failed to create mount point %s: %w", mountpoint, err)
	}

	m.logger.Info().Str("device", device).Str("mountpoint", mountpoint).Msg("mounting backup device")

	out, err := execCommand(ctx, mountCmd, device, mountpoint).CombinedOutput()
	if err != nil {
		return commandError(fmt.Sprintf("mount %s on %s", device, mountpoint), err, out)
	}
	return nil
}

func (m *Mounter) Unmount(ctx context.Context, mountpoint string) error {
	// Unmounting straight after a copy races the kernel flushing dirty pages
	// to the device and fails with "target is busy".
	select {
	case <-time.After(m.settleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	m.logger.Info().Str("mountpoint", mountpoint).Msg("unmounting backup device")

	out, err := execCommand(ctx, umountCmd, mountpoint).CombinedOutput()
	if err != nil {
		return commandError(fmt.Sprintf("unmount %s", mountpoint), err, out)
	}
	return nil
}

func commandError(action string, err error, out []byte) error {
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return fmt.Errorf("failed to %s: %w (%s)", action, err, msg)
}
