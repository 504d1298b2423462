// Package rsync drives the rsync binary that copies the source trees into a
// slot directory on the mounted backup device.
package rsync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"hanoibak/internal/logging"
	"hanoibak/internal/rotation"

	"github.com/rs/zerolog"
)

const rsyncCmd = "rsync"

// execCommand is swapped out in tests.
var execCommand = exec.CommandContext

type Syncer struct {
	logger zerolog.Logger
}

// New returns a Syncer, or an error when the rsync binary is not installed.
func New() (*Syncer, error) {
	if _, err := exec.LookPath(rsyncCmd); err != nil {
		return nil, fmt.Errorf("rsync is not installed: %w", err)
	}
	return &Syncer{logger: logging.GetLogger("rsync")}, nil
}

// Sync copies sources into dest and returns the transferred byte count as
// reported by rsync.
func (s *Syncer) Sync(ctx context.Context, sources []string, dest string, mode rotation.VerifyMode) (int64, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create slot directory %s: %w", dest, err)
	}

	args := buildArgs(sources, dest, mode)
	s.logger.Debug().Strs("args", args).Msg("running rsync")

	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, rsyncCmd, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("failed to run rsync: %w (%s)", err, msg)
		}
		return 0, fmt.Errorf("failed to run rsync: %w", err)
	}

	return parseTransferredBytes(stdout.String()), nil
}

// buildArgs assembles the rsync invocation. Sources are passed without a
// trailing slash so each one lands under its own name inside the slot
// directory instead of merging into it.
func buildArgs(sources []string, dest string, mode rotation.VerifyMode) []string {
	args := []string{"--archive", "--delete", "--safe-links", "--stats"}
	if mode == rotation.VerifyChecksum {
		args = append(args, "--checksum")
	}
	for _, src := range sources {
		src = strings.TrimRight(src, "/")
		if src == "" {
			src = "/"
		}
		args = append(args, src)
	}
	return append(args, dest)
}

// parseTransferredBytes scans --stats output for a line like
// "Total transferred file size: 1,234,567 bytes". A missing or malformed
// line reports zero rather than failing the run.
func parseTransferredBytes(output string) int64 {
	for _, line := range strings.Split(output, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Total transferred file size:")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "bytes"))
		rest = strings.ReplaceAll(rest, ",", "")
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			continue
		}
		return n
	}
	return 0
}
