package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/platform"
	"github.com/clipvault/clipvault/internal/storage"
	"github.com/clipvault/clipvault/pkg/format"
)

// newReadCmd creates the read command
func newReadCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Capture the current clipboard image",
		Long: `Read the image currently on the clipboard, convert it to PNG if
necessary, and store it in the vault. Prints the resulting record.

Exits with status 1 when the clipboard holds no supported image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetZapLogger()

			clip := platform.NewClipboard(logger)
			store := storage.NewImageStore(cfg.Storage.ImagesDir, logger)
			reader := clipboard.NewReader(clip, store, logger)

			if checkOnly {
				if !reader.HasImage() {
					fmt.Println("no image on clipboard")
					os.Exit(1)
				}
				fmt.Println("image available")
				return nil
			}

			record, err := reader.ReadImage()
			if err != nil {
				return fmt.Errorf("failed to read clipboard image: %w", err)
			}
			if record == nil {
				fmt.Println("no image on clipboard")
				os.Exit(1)
			}

			// Record the capture in history; a failure here should not lose
			// the capture itself.
			history, err := storage.NewHistoryStore(storage.HistoryConfig{
				DBPath: cfg.Storage.DBPath,
				Logger: logger,
			})
			if err != nil {
				logger.Warn("failed to open history store", zap.Error(err))
			} else {
				defer history.Close()
				if err := history.SaveRecord(record); err != nil {
					logger.Warn("failed to record capture in history", zap.Error(err))
				}
			}

			if useJSON {
				encoded, err := json.MarshalIndent(record, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode record: %w", err)
				}
				fmt.Println(string(encoded))
				return nil
			}

			fmt.Println(format.FormatRecord(record))
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether an image is available")
	return cmd
}
