package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-health/triage-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "triage-cli",
	Short: "Structured field extraction for medical triage messages",
	Long:  "Parses noisy nurse triage messages into structured fields: attending doctor, patient name, callback number, date of birth, OB status, and chief complaint.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
