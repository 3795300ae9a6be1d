package config

import (
	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/logger"
)

// Setup configures a registry from the process environment in one
// call. It loads the file named by ELISA_LOG_CONFIG, or the embedded
// schema named by ELISA_LOG_SCHEMA when no file is given, applies the
// routing table, then applies the ELISA_LOG_LEVEL root override and
// the ELISA_LOG_SUPPRESS mute.
//
// Setup returns instead of exiting on failure; the caller decides
// whether a broken logging setup is fatal for the process.
func Setup(reg *logger.Registry) error {
	envVars, err := LoadEnv()
	if err != nil {
		return err
	}

	var table *RoutingTable
	if envVars.ConfigPath != "" {
		table, err = LoadFile(envVars.ConfigPath)
	} else {
		table, err = LoadSchema(envVars.Schema)
	}
	if err != nil {
		return err
	}

	if err := table.Apply(reg); err != nil {
		return err
	}

	if envVars.Level != "" {
		level, err := core.ParseLevel(envVars.Level)
		if err != nil {
			return err
		}
		reg.Root().SetLevel(level)
	}
	reg.SetSuppressAll(envVars.Suppress)
	return nil
}
