package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/hexgrid"
	"github.com/ridgeline-comms/meshplan/internal/layer"
)

var gridGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the hex cell lattice",
	Long: `Generate a flat-top hexagonal cell lattice over the configured
bounding box and write it to the cells layer. Cell ids are assigned in
scan order, so generation is deterministic.`,
	RunE: runGridGen,
}

func init() {
	f := gridGenCmd.Flags()
	f.Float64("radius-mi", 0, "cell radius in miles (overrides config)")
	gridCmd.AddCommand(gridGenCmd)
}

func runGridGen(cmd *cobra.Command, _ []string) error {
	log := zap.L().With(zap.String("command", "grid gen"))

	if len(cfg.Grid.BBox) != 4 {
		return eris.Errorf("grid gen: grid.bbox must have 4 values (got %d)", len(cfg.Grid.BBox))
	}
	radius := cfg.Grid.RadiusMi
	if v, _ := cmd.Flags().GetFloat64("radius-mi"); v > 0 {
		radius = v
	}
	if radius <= 0 {
		return eris.Errorf("grid gen: radius must be positive (got %g)", radius)
	}

	bbox := hexgrid.BBox{
		MinLon: cfg.Grid.BBox[0],
		MinLat: cfg.Grid.BBox[1],
		MaxLon: cfg.Grid.BBox[2],
		MaxLat: cfg.Grid.BBox[3],
	}

	cells := hexgrid.Generate(bbox, radius)
	log.Info("generated hex lattice",
		zap.Int("cells", len(cells)),
		zap.Float64("radius_mi", radius),
	)

	if err := layer.Write(cfg.Layers.Cells, layer.EncodeCells(cells)); err != nil {
		return err
	}

	fmt.Printf("Wrote %d hex cells to %s\n", len(cells), cfg.Layers.Cells)
	return nil
}
