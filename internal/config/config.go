// Package config loads application configuration from config.yaml and
// MESHPLAN_-prefixed environment variables.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Layers   LayersConfig   `yaml:"layers" mapstructure:"layers"`
	Grid     GridConfig     `yaml:"grid" mapstructure:"grid"`
	Zones    ZonesConfig    `yaml:"zones" mapstructure:"zones"`
	Validate ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// LayersConfig holds the GeoJSON layer file paths.
type LayersConfig struct {
	Zones     string `yaml:"zones" mapstructure:"zones"`
	Corridors string `yaml:"corridors" mapstructure:"corridors"`
	Cells     string `yaml:"cells" mapstructure:"cells"`
	Sites     string `yaml:"sites" mapstructure:"sites"`
}

// GridConfig configures hex grid generation.
type GridConfig struct {
	// BBox is min_lon, min_lat, max_lon, max_lat.
	BBox     []float64 `yaml:"bbox" mapstructure:"bbox"`
	RadiusMi float64   `yaml:"radius_mi" mapstructure:"radius_mi"`
}

// ZonesConfig holds per-zone planning profiles.
type ZonesConfig struct {
	// RadiusMi overrides cell radius per zone_id.
	RadiusMi map[string]float64 `yaml:"radius_mi" mapstructure:"radius_mi"`
	// Defaults scaffolds unset cell attributes per zone_id.
	Defaults map[string]ZoneDefaults `yaml:"defaults" mapstructure:"defaults"`
}

// ZoneDefaults is the attribute profile applied to unsurveyed cells in
// a zone.
type ZoneDefaults struct {
	ElevAdvAvail      int     `yaml:"elev_adv_avail" mapstructure:"elev_adv_avail"`
	TallStructAvail   int     `yaml:"tall_struct_avail" mapstructure:"tall_struct_avail"`
	BackboneLOSLikely int     `yaml:"backbone_los_likely" mapstructure:"backbone_los_likely"`
	ClutterHigh       int     `yaml:"clutter_high" mapstructure:"clutter_high"`
	PopWeight         float64 `yaml:"pop_weight" mapstructure:"pop_weight"`
	CriticalWeight    float64 `yaml:"critical_weight" mapstructure:"critical_weight"`
}

// ValidateConfig holds the per-layer validation policy.
type ValidateConfig struct {
	// MaxFailureRate is the fraction of a layer's records that may
	// fail validation before the run aborts.
	MaxFailureRate float64 `yaml:"max_failure_rate" mapstructure:"max_failure_rate"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MESHPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("layers.zones", "data/zones.geojson")
	v.SetDefault("layers.corridors", "data/corridors.geojson")
	v.SetDefault("layers.cells", "data/hex_cells.geojson")
	v.SetDefault("layers.sites", "data/sites.geojson")
	v.SetDefault("grid.bbox", []float64{-125.0, 24.0, -66.5, 49.5})
	v.SetDefault("grid.radius_mi", 35.0)
	v.SetDefault("validate.max_failure_rate", 0.25)
	v.SetDefault("store.path", "meshplan.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// viper lowercases every key it unmarshals, map keys included,
	// which would corrupt case-sensitive zone ids like "Z-01". Decode
	// the zones section straight from the file instead.
	if path := v.ConfigFileUsed(); path != "" {
		if err := loadZoneProfiles(path, &cfg.Zones); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// loadZoneProfiles re-reads the per-zone maps from the raw config file
// so zone ids keep their original case.
func loadZoneProfiles(path string, zones *ZonesConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "config: read %s", path)
	}

	var raw struct {
		Zones ZonesConfig `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return eris.Wrapf(err, "config: parse zone profiles in %s", path)
	}

	if raw.Zones.RadiusMi != nil {
		zones.RadiusMi = raw.Zones.RadiusMi
	}
	if raw.Zones.Defaults != nil {
		zones.Defaults = raw.Zones.Defaults
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
