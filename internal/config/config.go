// Package config manages smbfix configuration.
//
// Settings come from SMBFIX_* environment variables, optionally seeded from
// a .env file in the working directory. Everything has a sensible default;
// the tool runs fine with no configuration at all.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of one smbfix invocation.
type Config struct {
	// ExtraExcludes are additional exclude-marker substrings; any path
	// containing one is skipped entirely (SMBFIX_EXCLUDE, comma separated)
	ExtraExcludes []string

	// AssumeYes skips the confirmation prompt (SMBFIX_ASSUME_YES)
	AssumeYes bool

	// NoRepair disables the permission/ownership repair pass even on
	// full-capability hosts (SMBFIX_NO_REPAIR)
	NoRepair bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; a missing file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if v := os.Getenv("SMBFIX_EXCLUDE"); v != "" {
		for _, marker := range strings.Split(v, ",") {
			if marker = strings.TrimSpace(marker); marker != "" {
				cfg.ExtraExcludes = append(cfg.ExtraExcludes, marker)
			}
		}
	}
	cfg.AssumeYes = boolEnv("SMBFIX_ASSUME_YES")
	cfg.NoRepair = boolEnv("SMBFIX_NO_REPAIR")
	return cfg
}

// boolEnv interprets an environment variable as a boolean flag.
func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
