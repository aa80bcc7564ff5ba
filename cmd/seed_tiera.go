package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/layer"
	"github.com/ridgeline-comms/meshplan/internal/model"
	"github.com/ridgeline-comms/meshplan/internal/seed"
)

var seedTierACmd = &cobra.Command{
	Use:   "tiera",
	Short: "Seed Tier A candidate sites from corridors",
	Long: `Sample Tier A candidate sites along each corridor line between its
min and max target counts, resolving each sample's home cell and zone
by point-in-polygon lookup. Existing Tier A sites are replaced so the
result stays deterministic; other tiers are kept.`,
	RunE: runSeedTierA,
}

func init() {
	f := seedTierACmd.Flags()
	f.String("targets-csv", "", "also write the per-corridor target rollup CSV")
	seedCmd.AddCommand(seedTierACmd)
}

func runSeedTierA(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "seed tiera"))

	corridors, issues, err := loadCorridors()
	if err != nil {
		return err
	}
	cells, cellIssues, err := loadCells()
	if err != nil {
		return err
	}
	issues = append(issues, cellIssues...)

	existing, siteIssues, err := loadExistingSites()
	if err != nil {
		return err
	}
	issues = append(issues, siteIssues...)

	var kept []model.Site
	for _, s := range existing {
		if s.Tier != model.TierA {
			kept = append(kept, s)
		}
	}

	seeded, rows, seedIssues := seed.TierA(corridors, cells)
	issues = append(issues, seedIssues...)

	all := append(kept, seeded...)
	if err := layer.Write(cfg.Layers.Sites, layer.EncodeSites(all)); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("targets-csv"); path != "" {
		if err := writeCSVFile(path, func(f *os.File) error {
			return seed.WriteTargetsCSV(f, rows)
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	log.Info("seeded Tier A candidates",
		zap.Int("seeded", len(seeded)),
		zap.Int("kept", len(kept)),
	)
	reportIssues(log, issues)
	fmt.Printf("Seeded %d Tier A candidates to %s\n", len(seeded), cfg.Layers.Sites)
	return nil
}
