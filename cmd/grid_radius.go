package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/hexgrid"
	"github.com/ridgeline-comms/meshplan/internal/layer"
)

var gridRadiusCmd = &cobra.Command{
	Use:   "set-radius",
	Short: "Apply the per-zone cell radius profile",
	Long: `Apply the zones.radius_mi profile from configuration to every cell.
Cells in zones without a profile entry keep their current radius and
are annotated in notes.`,
	RunE: runGridRadius,
}

func init() { gridCmd.AddCommand(gridRadiusCmd) }

func runGridRadius(_ *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "grid set-radius"))

	if len(cfg.Zones.RadiusMi) == 0 {
		fmt.Println("No zones.radius_mi profile configured; nothing to do.")
		return nil
	}

	cells, issues, err := loadCells()
	if err != nil {
		return err
	}

	updated, changed, unknown := hexgrid.SetRadius(cells, cfg.Zones.RadiusMi)
	log.Info("applied radius profile",
		zap.Int("changed", changed),
		zap.Int("unknown_zone", unknown),
	)

	if err := layer.Write(cfg.Layers.Cells, layer.EncodeCells(updated)); err != nil {
		return err
	}

	reportIssues(log, issues)
	fmt.Printf("Updated cell_radius_mi for %d cells; %d cells had missing/unknown zone_id\n",
		changed, unknown)
	return nil
}
