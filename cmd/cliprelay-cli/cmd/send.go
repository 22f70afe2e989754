package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"cliprelay/internal/domain"
)

var sendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Classify and deliver one line without touching the clipboard",
	Long: `Send runs the same classification and delivery path as watch for the
given text.

Examples:
  cliprelay-cli send "todo: buy milk"
  cliprelay-cli send fu: "call Anna back"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		text := strings.Join(args, " ")

		entry := domain.Classify(text, cfg.Tags, cfg.UnknownTag)
		if entry == nil {
			return fmt.Errorf("not classified: no tag-prefixed line found in %q", text)
		}

		outcome := newDeliverer().Deliver(cmd.Context(), *entry)
		if journal := openJournal(); journal != nil {
			defer journal.Close()
			if err := journal.Record(*entry, cfg.Who, outcome); err != nil {
				log.Printf("[error] journal write failed: %v", err)
			}
		}

		if !outcome.OK() {
			return fmt.Errorf("delivery failed: %s", outcome)
		}
		fmt.Printf("[sent] %s: %s\n", entry.Tag, entry.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
