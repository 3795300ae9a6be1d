package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON configuration document and resolves it into a
// routing table. Unknown keys and trailing content are rejected so a
// typo surfaces as a *ConfigError instead of silently configuring
// nothing.
func Parse(data []byte) (*RoutingTable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Reason: "empty document"}
		}
		return nil, &ConfigError{Reason: fmt.Sprintf("malformed document: %v", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Reason: "trailing data after document"}
	}
	return doc.Resolve()
}

// ParseYAML decodes a YAML configuration document and resolves it
// into a routing table. Unknown keys are rejected.
func ParseYAML(data []byte) (*RoutingTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Reason: "empty document"}
		}
		return nil, &ConfigError{Reason: fmt.Sprintf("malformed document: %v", err)}
	}
	return doc.Resolve()
}

// LoadFile reads and parses a configuration file. Files ending in
// .yaml or .yml decode as YAML, everything else as JSON.
func LoadFile(path string) (*RoutingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}
