package cmd

import (
	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/icon"
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd verifies the Bangumi credentials without syncing anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the Bangumi access token",
	Run: func(cmd *cobra.Command, args []string) {
		d := integration.NewDispatcher(config.Load())
		me, _, err := d.Identify(cmd.Context())
		handleErr(err)

		cmd.Printf("%s authenticated as %s %s\n",
			style.Fg(style.Green)(icon.Get(icon.Success)),
			style.Bold(me.Username),
			style.Faint("("+me.Nickname+")"),
		)
	},
}
