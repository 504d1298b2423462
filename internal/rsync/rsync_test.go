package rsync

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"hanoibak/internal/logging"
	"hanoibak/internal/rotation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		dest    string
		mode    rotation.VerifyMode
		want    []string
	}{
		{
			name:    "quick mode uses the base flag set",
			sources: []string{"/home"},
			dest:    "/mnt/backup/slots/a",
			mode:    rotation.VerifyQuick,
			want:    []string{"--archive", "--delete", "--safe-links", "--stats", "/home", "/mnt/backup/slots/a"},
		},
		{
			name:    "checksum mode adds the checksum flag",
			sources: []string{"/home"},
			dest:    "/mnt/backup/slots/f",
			mode:    rotation.VerifyChecksum,
			want:    []string{"--archive", "--delete", "--safe-links", "--stats", "--checksum", "/home", "/mnt/backup/slots/f"},
		},
		{
			name:    "trailing slashes are trimmed from sources",
			sources: []string{"/home/", "/etc"},
			dest:    "/mnt/backup/slots/b",
			mode:    rotation.VerifyQuick,
			want:    []string{"--archive", "--delete", "--safe-links", "--stats", "/home", "/etc", "/mnt/backup/slots/b"},
		},
		{
			name:    "root stays root",
			sources: []string{"/"},
			dest:    "/mnt/backup/slots/c",
			mode:    rotation.VerifyQuick,
			want:    []string{"--archive", "--delete", "--safe-links", "--stats", "/", "/mnt/backup/slots/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArgs(tt.sources, tt.dest, tt.mode))
		})
	}
}

func TestParseTransferredBytes(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int64
	}{
		{
			name: "plain number",
			output: `Number of files: 12
Total transferred file size: 4096 bytes
sent 120 bytes  received 35 bytes`,
			want: 4096,
		},
		{
			name:   "thousands separators",
			output: "Total transferred file size: 1,234,567 bytes",
			want:   1234567,
		},
		{
			name:   "nothing transferred",
			output: "Total transferred file size: 0 bytes",
			want:   0,
		},
		{
			name:   "stats line missing",
			output: "sent 120 bytes  received 35 bytes",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTransferredBytes(tt.output))
		})
	}
}

func TestSync(t *testing.T) {
	syncer := &Syncer{logger: logging.GetLogger("rsync")}

	t.Run("should create the slot directory and report transferred bytes", func(t *testing.T) {
		execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", `echo "Total transferred file size: 2,048 bytes"`)
		}
		t.Cleanup(func() { execCommand = exec.CommandContext })

		dest := filepath.Join(t.TempDir(), "slots", "a")
		sent, err := syncer.Sync(context.Background(), []string{"/home"}, dest, rotation.VerifyQuick)
		require.NoError(t, err)
		assert.Equal(t, int64(2048), sent)
		assert.DirExists(t, dest)
	})

	t.Run("should surface rsync stderr on failure", func(t *testing.T) {
		execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "sh", "-c", `echo "rsync error: some files could not be transferred" >&2; exit 23`)
		}
		t.Cleanup(func() { execCommand = exec.CommandContext })

		_, err := syncer.Sync(context.Background(), []string{"/home"}, t.TempDir(), rotation.VerifyQuick)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "some files could not be transferred")
	})
}

func TestNewRequiresRsync(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsync is not installed")
}
