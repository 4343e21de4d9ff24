package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/common"
	"github.com/clipvault/clipvault/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clipvault",
	Short: "Capture clipboard images into a deduplicated PNG vault",
	Long: `ClipVault captures images from the system clipboard and archives them
as PNG files named by content hash, so the same image is only ever
stored once. It handles direct PNG clipboard data as well as DIB and
DIBV5 bitmaps, which are converted losslessly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		switch {
		case verbose:
			cfg.Log.Level = "debug"
		case quiet:
			cfg.Log.Level = "warn"
		}

		zapLogger, err = common.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zapLogger != nil {
			zapLogger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimize output")
	rootCmd.PersistentFlags().BoolVar(&useJSON, "json", false, "output in JSON format")

	// Add commands
	rootCmd.AddCommand(
		newReadCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		versionCmd,
	)
}
