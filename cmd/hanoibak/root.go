package main

import (
	"fmt"

	"hanoibak/internal/logging"
	"hanoibak/internal/version"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "hanoibak",
		Short: "Tower of Hanoi backup rotation",
		Long: `hanoibak copies source directories onto a backup device with rsync,
rotating through six reusable slot directories on a Tower of Hanoi
schedule. The schedule keeps a mix of recent and long-retention restore
points on a small, fixed amount of media.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.Setup(verbosity)

			if err := godotenv.Load(); err != nil {
				log.Debug().Msg("no .env file found")
			}

			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Verbosity flag for logging
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for hanoibak`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hanoibak version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
