// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/prepdesk/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Goals     GoalsConfig               `toml:"goals"`
	Analytics AnalyticsConfig           `toml:"analytics"`
	Drill     DrillConfig               `toml:"drill"`
	Storage   StorageConfig             `toml:"storage"`
	Strategy  map[string]model.Strategy `toml:"strategy"`
}

// GoalsConfig maps goal-related settings.
type GoalsConfig struct {
	Lang *string `toml:"lang"`
}

// AnalyticsConfig maps analytics settings.
type AnalyticsConfig struct {
	MinSample   *int `toml:"min-sample"`
	CurveWindow *int `toml:"curve-window"`
	Last        *int `toml:"last"`
}

// DrillConfig maps practice-mix settings.
type DrillConfig struct {
	Questions *int     `toml:"questions"`
	Factor    *float64 `toml:"factor"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for subject, s := range cfg.Strategy {
		if s.DailyTime <= 0 {
			return FileConfig{}, fmt.Errorf("strategy %q: daily-time must be > 0", subject)
		}
	}
	return cfg, nil
}
