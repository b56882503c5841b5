package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/anisan-cli/bgmsync/event"
	"github.com/anisan-cli/bgmsync/filesystem"
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/anisan-cli/bgmsync/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.Flags().BoolP("json", "j", false, "Print the outcome as JSON")
	eventCmd.Flags().Bool("schema", false, "Print the JSON schema of event payloads and exit")
	eventCmd.Flags().StringP("mode", "m", string(integration.ModeEvent), "Where the media server is taken from: event, config or probe")
	lo.Must0(eventCmd.RegisterFlagCompletionFunc("mode", completionModes))
}

// eventCmd syncs an "episode watched" payload read from a file or stdin.
var eventCmd = &cobra.Command{
	Use:   "event [file|-]",
	Short: "Sync an episode watched event payload",
	Long: `Sync an episode watched event payload.

The payload is one episode object or an array of them, read from the given file
or from stdin when the argument is "-" or missing. See --schema for its format.`,
	Example: `  bgmsync event payload.json
  curl -s http://hook/last | bgmsync event -`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			data, err := json.MarshalIndent(event.Schema(), "", "  ")
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		mode, err := integration.ParseMode(lo.Must(cmd.Flags().GetString("mode")))
		handleErr(err)

		var in io.Reader = os.Stdin
		if len(args) == 1 && args[0] != "-" {
			file, err := filesystem.API().Open(args[0])
			handleErr(err)
			defer util.Ignore(file.Close)
			in = file
		}

		payload, err := event.Decode(in)
		// only event mode needs a payload
		if err != nil && !(errors.Is(err, event.ErrEmpty) && mode != integration.ModeEvent) {
			handleErr(err)
		}

		runSync(cmd, mode, payload, nil)
	},
}
