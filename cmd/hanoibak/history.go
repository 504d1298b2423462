package main

import (
	"fmt"

	"hanoibak/internal/config"
	"hanoibak/internal/database"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs and slot freshness",
	Long: `Show the catalog: when each rotation slot was last written, and the most
recent backup runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		dm := database.NewInstance(db)
		out := cmd.OutOrStdout()

		slots, err := dm.Slots().List()
		if err != nil {
			return fmt.Errorf("failed to list slots: %w", err)
		}

		fmt.Fprintln(out, "SLOT  RUNS  LAST DAY  LAST RUN")
		for _, slot := range slots {
			lastRun := "never"
			if !slot.LastRunAt.IsZero() {
				lastRun = slot.LastRunAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "%-4s  %4d  %8d  %s\n", slot.Label, slot.RunCount, slot.LastDay, lastRun)
		}

		runs, err := dm.Runs().ListRecent(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Fprintln(out, "\nno runs recorded yet")
			return nil
		}

		fmt.Fprintln(out, "\nID    DAY  SLOT  STATUS   BYTES       STARTED")
		for _, run := range runs {
			fmt.Fprintf(out, "%-4d  %3d  %-4s  %-7s  %10d  %s\n",
				run.ID, run.Day, run.Slot, run.Status, run.BytesSent,
				run.StartedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
}
