// Package cmd implements the command-line interface for bgmsync.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/icon"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/log"
	"github.com/anisan-cli/bgmsync/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("log-level", "", "Override logs.level for this run")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("log-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warn", "info", "debug", "trace"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.LogsLevel, rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.PersistentFlags().String("proxy", "", "Override network.proxy for this run")
	lo.Must0(viper.BindPFlag(key.NetworkProxy, rootCmd.PersistentFlags().Lookup("proxy")))
}

// rootCmd defines the entry point for the bgmsync application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Sync watched episodes from Emby and Jellyfin to Bangumi",
	Long: style.New().Bold(true).Foreground(style.HiPurple).Render(constant.App) + "\n" +
		style.New().Italic(true).Foreground(style.HiCyan).Render("    - Mirror what you watch on your media server to your bgm.tv collection"),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// flags are bound after main has configured logging
		return log.Setup()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
