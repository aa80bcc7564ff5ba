package main

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/layer"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

var gridImportCmd = &cobra.Command{
	Use:   "import-zones <shapefile>",
	Short: "Import zone boundaries from a shapefile",
	Long: `Convert an ESRI shapefile of zone polygons into the zones GeoJSON
layer. The attribute fields holding the zone id and name are
configurable via flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runGridImport,
}

func init() {
	f := gridImportCmd.Flags()
	f.String("id-field", "ZONE_ID", "attribute field holding the zone id")
	f.String("name-field", "NAME", "attribute field holding the zone name")
	gridCmd.AddCommand(gridImportCmd)
}

func runGridImport(cmd *cobra.Command, args []string) error {
	log := zap.L().With(zap.String("command", "grid import-zones"))

	idField, _ := cmd.Flags().GetString("id-field")
	nameField, _ := cmd.Flags().GetString("name-field")

	reader, err := shp.Open(args[0])
	if err != nil {
		return eris.Wrapf(err, "import-zones: open shapefile %s", args[0])
	}
	defer func() { _ = reader.Close() }()

	idIdx := shpFieldIndex(reader, idField)
	nameIdx := shpFieldIndex(reader, nameField)
	if idIdx < 0 {
		return eris.Errorf("import-zones: field %q not found in shapefile", idField)
	}

	var zones []model.Zone
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}

		zoneID := strings.TrimSpace(reader.Attribute(idIdx))
		if zoneID == "" {
			skipped++
			continue
		}
		name := ""
		if nameIdx >= 0 {
			name = strings.TrimSpace(reader.Attribute(nameIdx))
		}

		g := shpPolygonToMultiPolygon(poly)
		if g == nil {
			log.Warn("skipping malformed zone polygon", zap.String("zone_id", zoneID))
			skipped++
			continue
		}

		zones = append(zones, model.Zone{ZoneID: zoneID, Name: name, Geometry: g})
	}

	if err := layer.Write(cfg.Layers.Zones, layer.EncodeZones(zones)); err != nil {
		return err
	}

	log.Info("imported zones", zap.Int("zones", len(zones)), zap.Int("skipped", skipped))
	fmt.Printf("Imported %d zones to %s (%d records skipped)\n", len(zones), cfg.Layers.Zones, skipped)
	return nil
}

// shpFieldIndex returns the index of a named field, or -1 if absent.
func shpFieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

// shpPolygonToMultiPolygon converts a shapefile polygon, treating each
// part as a separate outer ring.
func shpPolygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
