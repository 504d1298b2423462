package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// flag values stick between executions on the shared root command
	slotDay = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSlotCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "day 1 is slot a",
			args: []string{"slot", "--day", "1"},
			want: "day 1: slot a (quick verify)",
		},
		{
			name: "day 8 is slot d",
			args: []string{"slot", "--day", "8"},
			want: "day 8: slot d (quick verify)",
		},
		{
			name: "day 32 is slot f with checksum",
			args: []string{"slot", "--day", "32"},
			want: "day 32: slot f (checksum verify)",
		},
		{
			name: "default day resolves to some slot",
			args: []string{"slot"},
			want: ": slot ",
		},
		{
			name:    "negative day fails",
			args:    []string{"slot", "--day", "-3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
