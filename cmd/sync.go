package cmd

import (
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolP("json", "j", false, "Print the outcome as JSON")
}

// syncCmd syncs items read from the configured media server.
var syncCmd = &cobra.Command{
	Use:   "sync [item ids...]",
	Short: "Sync watched episodes of the configured media server by item id",
	Long: `Sync watched episodes of the configured media server by item id.

The items must be episodes of the same season of one series.`,
	Example: "  bgmsync sync 12345 12346",
	Run: func(cmd *cobra.Command, args []string) {
		runSync(cmd, integration.ModeConfig, nil, args)
	},
}
