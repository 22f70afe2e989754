package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cliprelay/internal/adapters/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent delivery attempts from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := sqlite.OpenJournal(getConfig().JournalFile)
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No deliveries recorded.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  [%s] %s: %s",
				rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Status, rec.Tag, rec.Text)
			if rec.Detail != "" {
				fmt.Printf("  (%s)", rec.Detail)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records to show")
}
