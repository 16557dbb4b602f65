package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sharecalc/models"
	"sharecalc/utils"
)

// LoadRateTable reads a YAML rate schedule. An empty path returns the
// built-in schedule. Schedules below the minimum supported version are rejected.
func LoadRateTable(path string, rc RatesConfig) (*models.RateTable, error) {
	if path == "" {
		return models.DefaultRateTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate schedule: %w", err)
	}
	return ParseRateTable(data, rc)
}

// ParseRateTable decodes a YAML schedule on top of the built-in defaults,
// so a file only needs the fields it changes. A `levels` list replaces the
// default level table entirely.
func ParseRateTable(data []byte, rc RatesConfig) (*models.RateTable, error) {
	rt := models.DefaultRateTable()
	if err := yaml.Unmarshal(data, rt); err != nil {
		return nil, fmt.Errorf("decode rate schedule: %w", err)
	}

	vc := versionConfig(rc)
	if status, ok := utils.CheckScheduleVersion(rt.Version, vc); !ok {
		return nil, fmt.Errorf("rate schedule version %q is %s", rt.Version, status)
	}
	return rt, nil
}

func versionConfig(rc RatesConfig) *utils.ScheduleVersionConfig {
	vc := utils.DefaultScheduleVersionConfig
	if rc.CurrentStable != "" {
		vc.CurrentStable = rc.CurrentStable
	}
	if rc.MinSupported != "" {
		vc.MinSupported = rc.MinSupported
	}
	return &vc
}

// ScheduleVersionConfig exposes the accepted schedule range for status reporting
func (c *Config) ScheduleVersionConfig() *utils.ScheduleVersionConfig {
	return versionConfig(c.Rates)
}
