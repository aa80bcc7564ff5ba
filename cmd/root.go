package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "meshplan",
	Short: "Radio-mesh site placement planner",
	Long:  "Plans radio-mesh site placement over a hexagonal grid: scores cell coverage confidence, derives tiered site demand, and credits Tier A corridor coverage against Tier B requirements.",
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
