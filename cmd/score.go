package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/classify"
	"github.com/ridgeline-comms/meshplan/internal/config"
	"github.com/ridgeline-comms/meshplan/internal/layer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score cell coverage confidence and demand",
	Long: `Compute derived fields for every hex cell: confidence score and
class from the four boolean attributes, the Tier B required/alternate
site counts, and the Tier C demand class from the weighted drivers.

Unset attributes are first scaffolded from the zones.defaults profile
where one is configured. Scoring is a pure function of the inputs, so
rerunning it is always safe.`,
	RunE: runScore,
}

func init() { rootCmd.AddCommand(scoreCmd) }

func runScore(_ *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "score"))

	cells, issues, err := loadCells()
	if err != nil {
		return err
	}

	scaffolded := 0
	if len(cfg.Zones.Defaults) > 0 {
		cells, scaffolded = classify.Scaffold(cells, scaffoldProfile(cfg.Zones.Defaults))
		log.Info("scaffolded unset attributes", zap.Int("fields", scaffolded))
	}

	scored, scoreIssues := classify.ScoreCells(cells)
	issues = append(issues, scoreIssues...)

	if err := layer.Write(cfg.Layers.Cells, layer.EncodeCells(scored)); err != nil {
		return err
	}

	log.Info("scored cells",
		zap.Int("total", len(scored)),
		zap.Int("excluded", len(scoreIssues)),
	)

	reportIssues(log, issues)
	fmt.Printf("Scaffolded %d field(s); scored %d cells (%d excluded)\n",
		scaffolded, len(scored)-len(scoreIssues), len(scoreIssues))
	return nil
}

// scaffoldProfile converts the config zone profiles into the classify
// package's form.
func scaffoldProfile(in map[string]config.ZoneDefaults) map[string]classify.Defaults {
	out := make(map[string]classify.Defaults, len(in))
	for zone, d := range in {
		out[zone] = classify.Defaults{
			ElevAdvAvail:      d.ElevAdvAvail,
			TallStructAvail:   d.TallStructAvail,
			BackboneLOSLikely: d.BackboneLOSLikely,
			ClutterHigh:       d.ClutterHigh,
			PopWeight:         d.PopWeight,
			CriticalWeight:    d.CriticalWeight,
		}
	}
	return out
}
