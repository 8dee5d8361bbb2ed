package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// ConfigRequirements lists the fields that must be set in an environment.
type ConfigRequirements struct {
	RequiredFields []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {RequiredFields: []string{"SERVER_PORT", "DB_HOST", "DB_NAME"}},
	Test:        {RequiredFields: []string{"SERVER_PORT", "DB_HOST", "DB_NAME"}},
	CI:          {RequiredFields: []string{"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"}},
	Production: {RequiredFields: []string{
		"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_URL",
	}},
}

func fieldValue(cfg *Config, field string) string {
	switch field {
	case "SERVER_PORT":
		return cfg.ServerPort
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PORT":
		return cfg.DBPort
	case "DB_USER":
		return cfg.DBUser
	case "DB_PASSWORD":
		return cfg.DBPassword
	case "DB_NAME":
		return cfg.DBName
	case "REDIS_URL":
		return cfg.RedisURL
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := cfg.Env
	if env == "" {
		env = GetEnvironment()
	}
	var errs ValidationErrors

	for _, field := range requirements[env].RequiredFields {
		if fieldValue(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("required in %s environment", env)})
		}
	}

	if _, err := strconv.Atoi(cfg.ServerPort); cfg.ServerPort != "" && err != nil {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be numeric"})
	}
	if _, err := planner.LookupPreset(cfg.PlannerDefaultPreset); err != nil {
		errs = append(errs, ValidationError{Field: "PLANNER_DEFAULT_PRESET", Message: err.Error()})
	}
	if cfg.PlannerWorkers < 0 {
		errs = append(errs, ValidationError{Field: "PLANNER_WORKERS", Message: "must not be negative"})
	}
	if cfg.PlannerPriceWeight < 0 {
		errs = append(errs, ValidationError{Field: "PLANNER_PRICE_WEIGHT", Message: "must not be negative"})
	}
	if cfg.PlanCacheTTL <= 0 {
		errs = append(errs, ValidationError{Field: "PLAN_CACHE_TTL", Message: "must be positive"})
	}
	if cfg.CatalogCacheTTL <= 0 {
		errs = append(errs, ValidationError{Field: "CATALOG_CACHE_TTL", Message: "must be positive"})
	}
	if cfg.RateLimitRequests <= 0 || cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "limit and window must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
