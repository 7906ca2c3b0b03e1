package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables that are set in the environment; fields whose
// variable is absent keep their current value.
func parseEnv(config *Config) error {
	return env.Parse(config)
}
