package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/adjacency"
	"github.com/ridgeline-comms/meshplan/internal/coverage"
	"github.com/ridgeline-comms/meshplan/internal/layer"
	"github.com/ridgeline-comms/meshplan/internal/model"
	"github.com/ridgeline-comms/meshplan/internal/rollup"
	"github.com/ridgeline-comms/meshplan/internal/store"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Tier A coverage satisfaction",
}

var coverageApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Credit Tier A coverage against Tier B required sites",
	Long: `Build the cell adjacency index, walk every Tier A site in ascending
site_id order, and mark Tier B required sites within each coverage set
as SATISFIED with provenance. Alternates are never touched and
already-satisfied sites are never rewritten, so rerunning on processed
data is a no-op. Writes the mutated sites layer, the per-zone rollup
CSV, and records the run in the history store.`,
	RunE: runCoverageApply,
}

func init() {
	f := coverageApplyCmd.Flags()
	f.String("rollup-csv", "data/tierb_after_tiera_by_zone.csv", "per-zone rollup CSV output path")
	f.Bool("no-record", false, "skip recording the run in the history store")
	coverageCmd.AddCommand(coverageApplyCmd)
	rootCmd.AddCommand(coverageCmd)
}

func runCoverageApply(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "coverage apply"))
	startedAt := time.Now().UTC()

	cells, issues, err := loadCells()
	if err != nil {
		return err
	}
	sites, siteIssues, err := loadSites()
	if err != nil {
		return err
	}
	issues = append(issues, siteIssues...)
	issues = append(issues, checkRefs(sites, cells)...)

	ix, geomIssues := adjacency.Build(cells)
	issues = append(issues, geomIssues...)
	log.Info("built adjacency index",
		zap.Int("cells", len(ix)),
		zap.Int("excluded", len(geomIssues)),
	)

	satisfied, result := coverage.Apply(sites, ix)
	issues = append(issues, result.Skipped...)
	log.Info("applied coverage",
		zap.Int("satisfied", result.Satisfied),
		zap.Int("tiera_used", result.TierAUsed),
		zap.Int("skipped", len(result.Skipped)),
	)

	if err := layer.Write(cfg.Layers.Sites, layer.EncodeSites(satisfied)); err != nil {
		return err
	}

	rows := rollup.Compute(satisfied)
	rollupPath, _ := cmd.Flags().GetString("rollup-csv")
	if err := writeCSVFile(rollupPath, func(f *os.File) error {
		return rollup.WriteCSV(f, rows)
	}); err != nil {
		return err
	}

	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		if err := recordCoverageRun(cmd, startedAt, result, len(issues), rows); err != nil {
			return err
		}
	}

	if err := rollup.WriteTable(os.Stdout, rows); err != nil {
		return err
	}
	reportIssues(log, issues)
	fmt.Printf("\nSatisfied %d Tier B required site(s); %d Tier A site(s) used\n",
		result.Satisfied, result.TierAUsed)
	fmt.Printf("Wrote %s and %s\n", cfg.Layers.Sites, rollupPath)
	return nil
}

// checkRefs validates site foreign keys against whichever layers are
// present; zones and corridors are optional at this stage.
func checkRefs(sites []model.Site, cells []model.Cell) []model.Issue {
	var zones []model.Zone
	if fc, err := layer.Read(cfg.Layers.Zones); err == nil {
		zones, _ = layer.DecodeZones(fc)
	}
	var corridors []model.Corridor
	if fc, err := layer.Read(cfg.Layers.Corridors); err == nil {
		corridors, _ = layer.DecodeCorridors(fc)
	}
	return layer.CheckSiteRefs(sites, zones, cells, corridors)
}

func recordCoverageRun(cmd *cobra.Command, startedAt time.Time, result coverage.Result, flagged int, rows []rollup.Row) error {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	ctx := cmd.Context()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run := &store.CoverageRun{
		StartedAt: startedAt,
		SitesPath: cfg.Layers.Sites,
		CellsPath: cfg.Layers.Cells,
		Satisfied: result.Satisfied,
		TierAUsed: result.TierAUsed,
		Flagged:   flagged,
		Rollups:   rows,
	}
	if err := st.RecordRun(ctx, run); err != nil {
		return err
	}

	fmt.Printf("Recorded run %s\n", run.ID)
	return nil
}
