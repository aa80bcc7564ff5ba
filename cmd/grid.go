package main

import "github.com/spf13/cobra"

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Hex grid generation and zone assignment",
	Long:  "Generate the planning hex lattice, assign cells to zones, and apply per-zone radius profiles.",
}

func init() { rootCmd.AddCommand(gridCmd) }
