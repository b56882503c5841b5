package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/anisan-cli/bgmsync/bangumi"
	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/event"
	"github.com/anisan-cli/bgmsync/icon"
	"github.com/anisan-cli/bgmsync/integration"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/anisan-cli/bgmsync/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// completionModes offers the sync modes accepted by --mode.
func completionModes(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	modes := lo.Map(integration.Modes(), func(m integration.Mode, _ int) string {
		return string(m)
	})
	return fuzzy.FindFold(toComplete, modes), cobra.ShellCompDirectiveNoFileComp
}

// runSync dispatches a sync from the loaded configuration and reports its outcome.
func runSync(cmd *cobra.Command, mode integration.Mode, payload []*event.Episode, ids []string) {
	d := integration.NewDispatcher(config.Load())
	outcome, _, err := d.Dispatch(cmd.Context(), mode, payload, ids...)

	if lo.Must(cmd.Flags().GetBool("json")) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		lo.Must0(encoder.Encode(outcome))
	} else if outcome != nil {
		printOutcome(cmd, outcome)
	}

	handleErr(err)
}

func printOutcome(cmd *cobra.Command, o *integration.Outcome) {
	var mark string
	switch o.Status {
	case integration.Propagated:
		mark = style.Fg(style.Green)(icon.Get(icon.Success))
	case integration.PartiallyPropagated:
		mark = style.Fg(style.Yellow)(icon.Get(icon.Partial))
	default:
		mark = style.Fg(style.Yellow)(icon.Get(icon.Skip))
	}

	title := "unknown series"
	if o.Series != nil {
		title = o.Series.Title
	}

	cmd.Printf("%s %s %s\n", mark, style.Bold(title), style.Faint(util.Capitalize(o.String())))

	if o.Subject != nil {
		cmd.Printf("  %s %s %s\n",
			style.Fg(style.Blue)("subject"),
			o.Subject.DisplayName(),
			style.Faint(fmt.Sprintf("(ratio %.2f) %s", o.Ratio, bangumi.SubjectURL(o.Subject.ID))),
		)
	}

	for _, m := range o.Marks {
		cmd.Printf("  %s S%02dE%02d %s\n", style.Fg(style.Purple)("marked"), o.Season, m.EpisodeNumber, style.Faint(bangumi.EpisodeURL(m.EpisodeID)))
	}

	if o.Synced() {
		cmd.Println(style.Faint("  " + util.Quantify(len(o.Marks), "episode", "episodes") + " synced"))
	}
}
