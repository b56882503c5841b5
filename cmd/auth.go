package cmd

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/bgmsync/auth"
	"github.com/anisan-cli/bgmsync/icon"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authLoginCmd.Flags().StringP("token", "t", "", "Access token, prompted for when omitted")
}

// authCmd groups the keyring-backed credential commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Bangumi access token stored in the system keyring",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Bangumi access token in the system keyring",
	Long: `Store a Bangumi access token in the system keyring.

Tokens are issued at https://next.bgm.tv/demo/access-token. The keyring is
consulted whenever bangumi.access_token is empty.`,
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")

		if token == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Bangumi access token:",
			}, &token, survey.WithValidator(survey.Required)))
		}

		token = strings.TrimSpace(token)
		if token == "" {
			handleErr(errors.New("empty access token"))
		}

		handleErr(auth.SetToken(token))
		cmd.Printf("%s access token saved\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the Bangumi access token from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		cmd.Printf("%s access token removed\n", style.Fg(style.Green)(icon.Get(icon.Success)))
	},
}
