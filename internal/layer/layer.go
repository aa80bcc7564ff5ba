// Package layer reads and writes the GeoJSON record layers the
// pipeline consumes and produces: zones, corridors, cells, and sites.
//
// Validation is per record: a bad record is flagged and excluded, and
// the run continues unless the failure rate for a layer exceeds the
// configured threshold. Only a structurally unreadable layer is fatal.
package layer

import (
	"encoding/json"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Read parses a GeoJSON FeatureCollection from disk. A file that
// cannot be parsed at all is a fatal error.
func Read(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "layer: read %s", path)
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "layer: parse %s", path)
	}
	return &fc, nil
}

// Write serializes a FeatureCollection with stable formatting so that
// re-running a stage on its own output is byte-identical.
func Write(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "layer: marshal %s", path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "layer: write %s", path)
	}
	return nil
}

// CheckFailureRate enforces the per-layer validation policy: the run
// aborts only when more than maxRate of a layer's records failed
// validation. The threshold is configuration (validate.max_failure_rate).
func CheckFailureRate(layerName string, failed, total int, maxRate float64) error {
	if total == 0 || failed == 0 {
		return nil
	}
	rate := float64(failed) / float64(total)
	if rate > maxRate {
		return eris.Errorf("layer: %s has %d/%d invalid records (%.0f%%), above the %.0f%% threshold",
			layerName, failed, total, rate*100, maxRate*100)
	}
	return nil
}

// propString returns a string property, or "" if absent or not a
// string.
func propString(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

// propFloat returns a numeric property, or nil if absent or null.
// Non-numeric values are an error.
func propFloat(props map[string]any, key string) (*float64, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, eris.Errorf("layer: %s is not numeric", key)
	}
	return &f, nil
}

// propInt returns an integer property, or nil if absent or null.
// Non-numeric or non-integral values are an error, never truncated.
func propInt(props map[string]any, key string) (*int, error) {
	f, err := propFloat(props, key)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, eris.Errorf("layer: %s is not an integer (got %g)", key, *f)
	}
	i := int(*f)
	return &i, nil
}
