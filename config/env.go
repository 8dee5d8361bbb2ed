package config

import (
	"os"
	"strings"
)

// Environment selects where credentials come from and which defaults apply.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads CI and ENV. Unset or unknown values mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test, Development:
		return env
	}
	return Development
}

// IsProduction is used before the configuration is loaded, e.g. to pick the
// log format.
func IsProduction() bool {
	return GetEnvironment() == Production
}

// DebugDefault is the fallback for PLANNER_DEBUG_DEFAULT. Plans carry search
// traces everywhere but production.
func (e Environment) DebugDefault() bool {
	return e != Production
}

// SSLMode is the fallback for DB_SSL_MODE.
func (e Environment) SSLMode() string {
	if e == Production {
		return "require"
	}
	return "disable"
}
