package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/elisa-suite/logrouter/core"
)

var (
	// ErrEnvNotValid wraps every environment validation failure so
	// callers can test with errors.Is.
	ErrEnvNotValid = errors.New("environment variables not valid")
)

// Env is the process environment surface. ELISA_LOG_CONFIG points at
// a configuration file and wins over ELISA_LOG_SCHEMA, which names an
// embedded schema. ELISA_LOG_LEVEL overrides the root threshold after
// the configuration is applied, and ELISA_LOG_SUPPRESS mutes every
// channel without touching the bindings.
type Env struct {
	ConfigPath string `env:"ELISA_LOG_CONFIG"`
	Schema     string `env:"ELISA_LOG_SCHEMA" envDefault:"default"`
	Level      string `env:"ELISA_LOG_LEVEL"`
	Suppress   bool   `env:"ELISA_LOG_SUPPRESS"`
}

// LoadEnv reads and validates the logging environment variables.
func LoadEnv() (*Env, error) {
	var envVars Env
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvNotValid, err.Error())
	}

	if err := validateEnv(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnv(envVars *Env) error {
	envError := make([]string, 0)

	if envVars.Level != "" {
		if _, err := core.ParseLevel(envVars.Level); err != nil {
			envError = append(envError, fmt.Sprintf("ELISA_LOG_LEVEL: %v", err))
		}
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvNotValid, strings.Join(envError, ", "))
	}
	return nil
}
