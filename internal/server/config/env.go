package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFile is loaded into the process environment before parsing.
// Variables that are already set win over the file.
var dotenvFile = ".env"

// parseEnv overlays variables named by the env tags on Config. Unset
// variables keep the current value.
func parseEnv(config *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return env.Parse(config)
}
