package config

import (
	"embed"
	"fmt"
)

//go:embed schemas
var schemaFS embed.FS

// Names of the embedded schemas. Default routes everything at INFO
// with per-subsystem console channels; Fit turns the fitting channels
// up to DEBUG for parameter-estimation runs.
const (
	DefaultSchema = "default"
	FitSchema     = "fit"
)

// Schemas returns the names accepted by LoadSchema.
func Schemas() []string {
	return []string{DefaultSchema, FitSchema}
}

// LoadSchema parses one of the embedded configuration schemas into a
// routing table. An unknown name is a *ConfigError.
func LoadSchema(name string) (*RoutingTable, error) {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, &ConfigError{Path: "schema", Reason: fmt.Sprintf("unknown embedded schema %q", name)}
	}
	return Parse(data)
}
