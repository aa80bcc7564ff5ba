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

var seedTierBCmd = &cobra.Command{
	Use:   "tierb",
	Short: "Seed Tier B candidate sites from scored cells",
	Long: `Materialize Tier B candidate sites for every scored cell according
to its required/alternate counts. By default existing Tier B sites are
replaced and other tiers kept; --append keeps everything.`,
	RunE: runSeedTierB,
}

func init() {
	f := seedTierBCmd.Flags()
	f.Bool("append", false, "keep existing Tier B sites instead of replacing them")
	f.String("requirements-csv", "", "also write the per-zone requirement rollup CSV")
	seedCmd.AddCommand(seedTierBCmd)
}

func runSeedTierB(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "seed tierb"))

	cells, issues, err := loadCells()
	if err != nil {
		return err
	}

	existing, siteIssues, err := loadExistingSites()
	if err != nil {
		return err
	}
	issues = append(issues, siteIssues...)

	appendAll, _ := cmd.Flags().GetBool("append")
	var kept []model.Site
	for _, s := range existing {
		if appendAll || s.Tier != model.TierB {
			kept = append(kept, s)
		}
	}

	seeded, rows, seedIssues := seed.TierB(cells)
	issues = append(issues, seedIssues...)

	all := append(kept, seeded...)
	if err := layer.Write(cfg.Layers.Sites, layer.EncodeSites(all)); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("requirements-csv"); path != "" {
		if err := writeCSVFile(path, func(f *os.File) error {
			return seed.WriteRequirementsCSV(f, rows)
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	log.Info("seeded Tier B candidates",
		zap.Int("seeded", len(seeded)),
		zap.Int("kept", len(kept)),
	)
	reportIssues(log, issues)
	fmt.Printf("Seeded %d Tier B candidates to %s\n", len(seeded), cfg.Layers.Sites)
	return nil
}

// loadExistingSites loads the sites layer, treating a missing file as
// an empty layer so first runs work without scaffolding.
func loadExistingSites() ([]model.Site, []model.Issue, error) {
	if _, err := os.Stat(cfg.Layers.Sites); os.IsNotExist(err) {
		return nil, nil, nil
	}
	return loadSites()
}
