package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cliprelay/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Acquire and cache the OAuth2 credential ahead of time",
	Long: `Login runs the interactive authorization flow now, so that watch never
has to pause for a browser. With a valid cached credential this is a
no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if getConfig().AuthMode != config.AuthOAuthUser {
			return fmt.Errorf("auth_mode is %q; there is nothing to log in to", getConfig().AuthMode)
		}

		creds := newCredentials()
		if _, err := creds.Token(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("[auth] login complete, credential cached")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
