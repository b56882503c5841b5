package cmd

import (
	"context"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/network"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/anisan-cli/bgmsync/version"
	"github.com/samber/lo"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display exhaustive version and build metadata",
	Long:  "Display the current application version, build revision, platform architecture, and related metadata.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer func() {
			client, err := network.New(viper.GetString(key.NetworkProxy), network.DefaultTimeout)
			if err != nil {
				return
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			version.Notify(ctx, cmd.OutOrStdout(), client)
		}()

		versionInfo := struct {
			Version   string
			OS        string
			Arch      string
			BuiltAt   string
			BuiltBy   string
			Revision  string
			App       string
			UserAgent string
		}{
			Version:   constant.Version,
			App:       constant.App,
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			BuiltAt:   strings.TrimSpace(constant.BuiltAt),
			BuiltBy:   constant.BuiltBy,
			Revision:  constant.Revision,
			UserAgent: constant.UserAgent,
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(style.Purple),
			"green":   style.Fg(style.Green),
			"repeat":  strings.Repeat,
			"concat": func(a, b string) string {
				return a + b
			},
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }} 

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }} 
  {{ faint "Build Date" }}  	  {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "User-Agent" }}      {{ bold .UserAgent }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
