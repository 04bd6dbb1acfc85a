package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/antmon/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	configFlag, pathFlag, intervalFlag, discoveryIntervalFlag = "", "", "", ""
	t.Cleanup(func() {
		configFlag, pathFlag, intervalFlag, discoveryIntervalFlag = "", "", "", ""
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetFlags(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	resetFlags(t)
	pathFlag = "/srv/nodes/node-*"
	intervalFlag = "5s"
	discoveryIntervalFlag = "2m"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/nodes/node-*", cfg.NodePathGlob)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.DiscoveryInterval)
}

func TestLoadConfig_BadInterval(t *testing.T) {
	resetFlags(t)
	intervalFlag = "soon"

	_, err := loadConfig()
	assert.ErrorContains(t, err, "--interval")
}

func TestLoadConfig_NegativeIntervalRejected(t *testing.T) {
	resetFlags(t)
	intervalFlag = "-3s"

	_, err := loadConfig()
	assert.ErrorContains(t, err, "poll_interval")
}
