package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridgeline-comms/meshplan/internal/rollup"
	"github.com/ridgeline-comms/meshplan/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded coverage runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent coverage runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one coverage run with its per-zone rollup",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsListCmd.Flags().Int("limit", 20, "maximum runs to list")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := st.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No coverage runs recorded")
		return nil
	}

	fmt.Printf("%-38s %-22s %10s %10s %8s\n",
		"RUN ID", "STARTED", "SATISFIED", "TIERA USED", "FLAGGED")
	for _, r := range runs {
		fmt.Printf("%-38s %-22s %10d %10d %8d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Satisfied, r.TierAUsed, r.Flagged)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:        %s\n", run.ID)
	fmt.Printf("Started:    %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Sites:      %s\n", run.SitesPath)
	fmt.Printf("Cells:      %s\n", run.CellsPath)
	fmt.Printf("Satisfied:  %d\n", run.Satisfied)
	fmt.Printf("Tier A:     %d used\n", run.TierAUsed)
	fmt.Printf("Flagged:    %d\n", run.Flagged)
	fmt.Println()
	return rollup.WriteTable(os.Stdout, run.Rollups)
}
