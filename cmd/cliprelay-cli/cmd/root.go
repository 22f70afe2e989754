package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"cliprelay/internal/adapters/oauth"
	"cliprelay/internal/adapters/sqlite"
	"cliprelay/internal/adapters/webhook"
	"cliprelay/internal/config"
	"cliprelay/internal/ports"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cliprelay-cli",
	Short: "Relay tag-prefixed clipboard lines to a web app endpoint",
	Long: `cliprelay-cli watches the system clipboard for tag-prefixed lines
("todo: buy milk") and relays each recognized line, classified into a
named section, to a single remote HTTP endpoint.

Delivery can authenticate with a cached, auto-refreshing OAuth2 user
credential; every attempt is recorded in a local journal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[fatal] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
}

// getConfig returns the loaded configuration
func getConfig() *config.Config {
	return cfg
}

// newCredentials builds the credential manager, or nil when auth is off.
func newCredentials() ports.CredentialSource {
	if cfg.AuthMode != config.AuthOAuthUser {
		return nil
	}
	return oauth.NewManager(oauth.Options{
		ClientSecretsFile: cfg.OAuth.ClientSecretsFile,
		TokenFile:         cfg.OAuth.TokenFile,
		Scopes:            cfg.OAuth.Scopes,
	})
}

// newDeliverer wires the delivery client from the loaded config.
func newDeliverer() ports.Deliverer {
	return webhook.NewClient(cfg.WebAppURL, cfg.Who, newCredentials())
}

// openJournal opens the delivery journal. Failure is not fatal: the
// relay keeps working, it just stops journaling.
func openJournal() *sqlite.Journal {
	journal, err := sqlite.OpenJournal(cfg.JournalFile)
	if err != nil {
		log.Printf("[error] journal unavailable: %v", err)
		return nil
	}
	return journal
}
