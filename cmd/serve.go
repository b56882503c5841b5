package cmd

import (
	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/server"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("address", "a", "", "Listen address, overrides serve.address")
	lo.Must0(viper.BindPFlag(key.ServeAddress, serveCmd.Flags().Lookup("address")))
}

// serveCmd listens for episode watched events pushed by media server hooks.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for episode watched events over HTTP",
	Long: `Listen for episode watched events over HTTP.

  POST /sync[?mode=event|config|probe]  sync an event payload
  GET  /health                          liveness probe`,
	Run: func(cmd *cobra.Command, args []string) {
		d := integration.NewDispatcher(config.Load())
		handleErr(server.ListenAndServe(cmd.Context(), viper.GetString(key.ServeAddress), server.New(d)))
	},
}
