package main

import (
	"fmt"
	"time"

	"hanoibak/internal/rotation"

	"github.com/spf13/cobra"
)

var slotDay int

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Show which rotation slot a day maps to",
	Long: `Show the rotation slot for a day of year without touching the device or
the catalog. Without --day, the current day is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := slotDay
		if day == 0 {
			day = time.Now().YearDay()
		}

		slot, err := rotation.SelectSlot(day)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "day %d: slot %s (%s verify)\n", day, slot, slot.VerifyMode())
		return nil
	},
}

func init() {
	slotCmd.Flags().IntVar(&slotDay, "day", 0, "Day of year to inspect (default: today)")
}
