package main

import (
	"fmt"
	"time"

	"hanoibak/internal/config"

	"github.com/spf13/cobra"
)

var (
	runDay    int
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single backup now",
	Long: `Run one backup for the current (or given) day of year: mount the device,
rsync the sources into the day's slot directory, record the result in the
catalog, and unmount.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		app, err := buildApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		run, err := app.services.Backup.Run(cmd.Context(), runDay, runDryRun)
		if err != nil {
			return err
		}

		if runDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "dry run: day %d would go to slot %s\n", run.Day, run.Slot)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run #%d finished: day %d, slot %s, %d bytes in %s\n",
			run.ID, run.Day, run.Slot, run.BytesSent, run.Duration().Round(time.Second))
		if run.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), run.Message)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runDay, "day", 0, "Day of year to back up (default: today)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Log the planned actions without copying anything")
}
