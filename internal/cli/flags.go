package cli

import (
	"fmt"
	"time"

	"github.com/dm/antmon/internal/config"
)

// loadConfig merges the config file (if any) with flag overrides and
// validates the result. Flags win over the file, which wins over defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	if pathFlag != "" {
		cfg.NodePathGlob = pathFlag
	}
	if intervalFlag != "" {
		d, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --interval %q: %w", intervalFlag, err)
		}
		cfg.PollInterval = d
	}
	if discoveryIntervalFlag != "" {
		d, err := time.ParseDuration(discoveryIntervalFlag)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --discovery-interval %q: %w", discoveryIntervalFlag, err)
		}
		cfg.DiscoveryInterval = d
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
