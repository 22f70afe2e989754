package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cliprelay/internal/adapters/clipboard"
	"cliprelay/internal/application"
	"cliprelay/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard and deliver tagged lines",
	Long: `Watch polls the clipboard at the configured interval. When the content
changes and its first non-blank line carries a known tag prefix, the
line is classified and delivered to the configured endpoint.

The loop runs until interrupted. Each clipboard value is attempted at
most once: a failed delivery is only re-triggered by new content.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.DocURL != "" {
			fmt.Printf("[info] target doc: %s\n", cfg.DocURL)
		}
		if cfg.AuthMode == config.AuthOAuthUser {
			fmt.Println("[info] auth mode: oauth-user")
			fmt.Printf("[info] oauth client secrets: %s\n", cfg.OAuth.ClientSecretsFile)
		}

		opts := application.WatcherOptions{
			Clipboard:  clipboard.NewReader(),
			Deliverer:  newDeliverer(),
			Tags:       cfg.Tags,
			UnknownTag: cfg.UnknownTag,
			Who:        cfg.Who,
			Interval:   cfg.PollInterval,
		}
		if journal := openJournal(); journal != nil {
			defer journal.Close()
			opts.Journal = journal
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := application.NewWatcher(opts).Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
