package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "* * * * *", AppConfig.DispatchCron)
	assert.Equal(t, "0 * * * *", AppConfig.MetricsCron)
	assert.Equal(t, "Europe/Bratislava", AppConfig.DisplayTimezone)
	assert.Equal(t, 55*time.Second, TickTimeout())
	assert.Equal(t, 5*time.Minute, ClaimStaleness())
}

func TestDisplayLocation_FallsBackToUTC(t *testing.T) {
	LoadConfig()
	AppConfig.DisplayTimezone = "Mars/Olympus_Mons"
	defer func() { AppConfig.DisplayTimezone = "Europe/Bratislava" }()

	assert.Equal(t, time.UTC, DisplayLocation())
}

func TestDisplayLocation_LoadsConfiguredZone(t *testing.T) {
	LoadConfig()
	loc := DisplayLocation()
	assert.Equal(t, "Europe/Bratislava", loc.String())
}
