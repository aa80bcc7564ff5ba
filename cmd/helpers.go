package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ridgeline-comms/meshplan/internal/layer"
	"github.com/ridgeline-comms/meshplan/internal/model"
)

// loadCells reads and decodes the cells layer, enforcing the
// validation failure-rate policy.
func loadCells() ([]model.Cell, []model.Issue, error) {
	fc, err := layer.Read(cfg.Layers.Cells)
	if err != nil {
		return nil, nil, err
	}
	cells, issues := layer.DecodeCells(fc)
	if err := layer.CheckFailureRate("cells", len(issues), len(fc.Features), cfg.Validate.MaxFailureRate); err != nil {
		return nil, issues, err
	}
	return cells, issues, nil
}

// loadSites reads and decodes the sites layer, enforcing the
// validation failure-rate policy.
func loadSites() ([]model.Site, []model.Issue, error) {
	fc, err := layer.Read(cfg.Layers.Sites)
	if err != nil {
		return nil, nil, err
	}
	sites, issues := layer.DecodeSites(fc)
	if err := layer.CheckFailureRate("sites", len(issues), len(fc.Features), cfg.Validate.MaxFailureRate); err != nil {
		return nil, issues, err
	}
	return sites, issues, nil
}

// loadZones reads and decodes the zones layer.
func loadZones() ([]model.Zone, []model.Issue, error) {
	fc, err := layer.Read(cfg.Layers.Zones)
	if err != nil {
		return nil, nil, err
	}
	zones, issues := layer.DecodeZones(fc)
	if err := layer.CheckFailureRate("zones", len(issues), len(fc.Features), cfg.Validate.MaxFailureRate); err != nil {
		return nil, issues, err
	}
	return zones, issues, nil
}

// loadCorridors reads and decodes the corridors layer.
func loadCorridors() ([]model.Corridor, []model.Issue, error) {
	fc, err := layer.Read(cfg.Layers.Corridors)
	if err != nil {
		return nil, nil, err
	}
	corridors, issues := layer.DecodeCorridors(fc)
	if err := layer.CheckFailureRate("corridors", len(issues), len(fc.Features), cfg.Validate.MaxFailureRate); err != nil {
		return nil, issues, err
	}
	return corridors, issues, nil
}

// reportIssues logs every flagged record and prints a closing summary
// so planners can see exactly what was excluded from the run.
func reportIssues(log *zap.Logger, issues []model.Issue) {
	for _, issue := range issues {
		log.Warn("record flagged",
			zap.String("layer", issue.Layer),
			zap.String("record", issue.RecordID),
			zap.String("kind", string(issue.Kind)),
			zap.String("reason", issue.Reason),
		)
	}
	if len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "%d record(s) skipped or flagged; see log for details\n", len(issues))
	}
}

// writeCSVFile writes a CSV artifact via the given writer function.
func writeCSVFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck

	return write(f)
}
