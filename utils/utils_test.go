package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{2.344, 2.34},
		{2.345, 2.35},
		{1.005, 1.01},
		{-1.005, -1.01},
		{16.666666, 16.67},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundCents(tc.in), "RoundCents(%v)", tc.in)
	}
}

func TestRoundCents_NonFinitePassesThrough(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, math.IsInf(RoundCents(math.Inf(1)), 1))
		assert.True(t, math.IsInf(RoundCents(math.Inf(-1)), -1))
		assert.True(t, math.IsNaN(RoundCents(math.NaN())))
	})
}

func TestCheckScheduleVersion(t *testing.T) {
	cfg := &ScheduleVersionConfig{CurrentStable: "1.2.0", MinSupported: "1.0.0"}

	cases := []struct {
		version   string
		status    string
		supported bool
	}{
		{"1.2.0", "current", true},
		{"v1.3.0", "current", true},
		{"1.1.5", "outdated", true},
		{"0.9.0", "unsupported", false},
		{"next", "unknown", false},
	}
	for _, tc := range cases {
		status, supported := CheckScheduleVersion(tc.version, cfg)
		assert.Equal(t, tc.status, status, tc.version)
		assert.Equal(t, tc.supported, supported, tc.version)
	}

	status, ok := CheckScheduleVersion("1.0.0", nil)
	assert.Equal(t, "current", status)
	assert.True(t, ok)
}

func TestGetScheduleMessage(t *testing.T) {
	cfg := &ScheduleVersionConfig{CurrentStable: "1.2.0", MinSupported: "1.0.0"}

	assert.Empty(t, GetScheduleMessage("1.2.0", cfg))
	assert.Contains(t, GetScheduleMessage("1.1.0", cfg), "1.2.0")
	assert.Contains(t, GetScheduleMessage("0.1.0", cfg), "no longer supported")
}

func TestResolveLocale(t *testing.T) {
	geo, err := NewGeoResolver("")
	assert.NoError(t, err)
	defer geo.Close()

	assert.Equal(t, LocaleItalian, geo.ResolveLocale("it", "en-US", "1.2.3.4"))
	assert.Equal(t, LocaleEnglish, geo.ResolveLocale("EN", "it-IT", ""))
	assert.Equal(t, LocaleItalian, geo.ResolveLocale("", "it-IT,it;q=0.9,en;q=0.8", ""))
	assert.Equal(t, LocaleEnglish, geo.ResolveLocale("fr", "de-DE", "1.2.3.4"))
	assert.Equal(t, "", geo.CountryCode("1.2.3.4"))
}

func TestResolveLocale_NilResolver(t *testing.T) {
	var geo *GeoResolver

	assert.Equal(t, LocaleEnglish, geo.ResolveLocale("", "", "5.6.7.8"))
	assert.Equal(t, LocaleItalian, geo.ResolveLocale("", "it", ""))
	assert.NotPanics(t, geo.Close)
}
