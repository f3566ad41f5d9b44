// Package spec models Datadog integration configuration specs
// (assets/configuration/spec.yaml) as fetched from integrations-core.
package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is one integration's parsed configuration spec.
type Document struct {
	Name  string        `yaml:"name"`
	Files []FileSection `yaml:"files"`
}

// FileSection describes one config file the integration ships
// (typically conf.yaml) and the options it accepts.
type FileSection struct {
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options"`
}

// Option is either a concrete field (Name plus Value) or a template
// reference (Template). Section-level options such as "instances"
// additionally carry nested Options.
type Option struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Template    string   `yaml:"template"`
	Value       *Value   `yaml:"value"`
	Options     []Option `yaml:"options"`
}

// Value is the recursive shape description of one field.
type Value struct {
	Type           string            `yaml:"type"`
	Example        any               `yaml:"example"`
	DisplayDefault any               `yaml:"display_default"`
	Items          *Value            `yaml:"items"`
	Properties     map[string]*Value `yaml:"properties"`
	Enum           []any             `yaml:"enum"`
	Minimum        *float64          `yaml:"minimum"`
	Maximum        *float64          `yaml:"maximum"`
}

// Parse decodes a raw upstream spec document. Callers are expected to
// substitute a fallback schema when parsing fails; the error carries the
// YAML diagnostic for logging.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec document: %w", err)
	}
	return &doc, nil
}
