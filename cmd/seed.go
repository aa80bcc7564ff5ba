package main

import "github.com/spf13/cobra"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Materialize candidate sites",
	Long:  "Seed Tier B candidate sites from scored cells and Tier A candidates from corridor targets.",
}

func init() { rootCmd.AddCommand(seedCmd) }
