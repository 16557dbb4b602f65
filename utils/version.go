package utils

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// ScheduleVersionConfig holds the accepted range of rate-schedule versions
type ScheduleVersionConfig struct {
	CurrentStable string
	MinSupported  string
}

var DefaultScheduleVersionConfig = ScheduleVersionConfig{
	CurrentStable: "1.0.0",
	MinSupported:  "1.0.0",
}

// CheckScheduleVersion classifies a rate-schedule version against the config.
// status is one of "current", "outdated", "unsupported" or "unknown".
func CheckScheduleVersion(scheduleVersion string, config *ScheduleVersionConfig) (status string, supported bool) {
	if config == nil {
		config = &DefaultScheduleVersionConfig
	}

	scheduleVersion = strings.TrimPrefix(strings.TrimSpace(scheduleVersion), "v")

	v, err := version.NewVersion(scheduleVersion)
	if err != nil {
		return "unknown", false
	}

	current, err := version.NewVersion(config.CurrentStable)
	if err != nil {
		return "unknown", false
	}
	minSupported, err := version.NewVersion(config.MinSupported)
	if err != nil {
		return "unknown", false
	}

	if v.LessThan(minSupported) {
		return "unsupported", false
	}
	if v.LessThan(current) {
		return "outdated", true
	}
	return "current", true
}

// GetScheduleMessage returns a human-readable note for non-current schedules
func GetScheduleMessage(scheduleVersion string, config *ScheduleVersionConfig) string {
	if config == nil {
		config = &DefaultScheduleVersionConfig
	}

	status, _ := CheckScheduleVersion(scheduleVersion, config)
	switch status {
	case "unsupported":
		return "Rate schedule " + scheduleVersion + " is no longer supported. Minimum is " + config.MinSupported + "."
	case "outdated":
		return "A newer rate schedule " + config.CurrentStable + " is available."
	case "unknown":
		return "Rate schedule version " + scheduleVersion + " could not be parsed."
	}
	return ""
}
