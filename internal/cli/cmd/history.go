package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/storage"
	"github.com/clipvault/clipvault/pkg/format"
)

// newHistoryCmd creates the history command with all subcommands
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage capture history",
		Long: `Manage the capture history:
  • List captured images
  • Delete history entries`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryDeleteCmd())

	return cmd
}

// newHistoryListCmd creates the list subcommand
func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List captured images",
		Long: `List captured images, newest first.

Examples:
  clipvault history list           # Show last 10 captures
  clipvault history list -n 50     # Show last 50 captures
  clipvault history list --json    # JSON output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := storage.NewHistoryStore(storage.HistoryConfig{
				DBPath: cfg.Storage.DBPath,
				Logger: GetZapLogger(),
			})
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer history.Close()

			records, err := history.GetHistory(limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			if useJSON {
				encoded, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode history: %w", err)
				}
				fmt.Println(string(encoded))
				return nil
			}

			if len(records) == 0 {
				fmt.Println("no captures recorded")
				return nil
			}
			for _, record := range records {
				fmt.Println(format.FormatRecord(record))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show (0 = all)")
	return cmd
}

// newHistoryDeleteCmd creates the delete subcommand
func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <hash>",
		Short: "Delete a history entry by content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := storage.NewHistoryStore(storage.HistoryConfig{
				DBPath: cfg.Storage.DBPath,
				Logger: GetZapLogger(),
			})
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer history.Close()

			if err := history.DeleteRecord(args[0]); err != nil {
				return fmt.Errorf("failed to delete history entry: %w", err)
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
