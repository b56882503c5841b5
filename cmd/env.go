package cmd

import (
	"os"
	"strings"

	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/anisan-cli/bgmsync/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd lists the environment variables overriding configuration keys.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the supported environment variables",
	Long: `Display the supported environment variables and their current values.

Every configuration key can be overridden by ` + strings.ToUpper(constant.App) + `_ followed by the key
in upper case with dots replaced by underscores, e.g. BGMSYNC_BANGUMI_ACCESS_TOKEN.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := lo.Map(config.EnvExposed, func(k string, _ int) string {
			field := config.Default[k]
			return field.Env()
		})
		names = append(names, where.EnvConfigPath)
		slices.Sort(names)

		for _, env := range names {
			value, present := os.LookupEnv(env)
			present = present && value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(style.Purple).Render(env))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(style.Red)("unset"))
			case strings.HasSuffix(env, "_TOKEN") || strings.HasSuffix(env, "_API_KEY"):
				cmd.Println(style.Fg(style.Green)(mask(value)))
			default:
				cmd.Println(style.Fg(style.Green)(value))
			}
		}
	},
}
