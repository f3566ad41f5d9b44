// Package convert turns parsed integration specs into JSON Schemas suitable
// for yaml-language-server autocomplete and validation.
package convert

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/takumiyoshikawa/ddschema/internal/spec"
)

const schemaVersion = "https://json-schema.org/draft/2020-12/schema"

// Section role markers recognized inside a spec file section.
const (
	roleInitConfig = "init_config"
	roleInstances  = "instances"
	roleLogs       = "logs"
)

// Property converts one value descriptor into a JSON Schema property
// fragment. Absent fields are omitted; the function is total over any
// well-formed descriptor.
func Property(v *spec.Value) *jsonschema.Schema {
	s := &jsonschema.Schema{}
	if v == nil {
		return s
	}

	s.Type = v.Type
	if v.Example != nil {
		s.Default = v.Example
	}
	// display_default wins over example-derived defaults.
	if v.DisplayDefault != nil {
		s.Default = v.DisplayDefault
	}
	if v.Items != nil {
		s.Items = Property(v.Items)
	}
	if len(v.Properties) > 0 {
		names := make([]string, 0, len(v.Properties))
		for name := range v.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		props := jsonschema.NewProperties()
		for _, name := range names {
			props.Set(name, Property(v.Properties[name]))
		}
		s.Properties = props
		s.Type = "object"
	}
	if len(v.Enum) > 0 {
		s.Enum = v.Enum
	}
	if v.Minimum != nil {
		s.Minimum = number(*v.Minimum)
	}
	if v.Maximum != nil {
		s.Maximum = number(*v.Maximum)
	}

	return s
}

// Extract walks an ordered option list and produces the property mapping
// plus the required-field list. Duplicate names overwrite (last write
// wins); template references expand through the fixed common-template
// table and unknown templates contribute nothing.
func Extract(opts []spec.Option) (*orderedmap.OrderedMap[string, *jsonschema.Schema], []string) {
	props := jsonschema.NewProperties()
	var required []string

	for _, opt := range opts {
		if opt.Name == "" {
			if opt.Template == "" {
				continue
			}
			for _, f := range templateFields(opt.Template) {
				props.Set(f.name, f.schema())
			}
			continue
		}

		prop := Property(opt.Value)
		if desc := strings.TrimSpace(opt.Description); desc != "" {
			prop.Description = desc
		}
		// Options may nest further options instead of a value descriptor.
		if len(opt.Options) > 0 {
			subProps, subReq := Extract(opt.Options)
			prop.Properties = subProps
			prop.Required = subReq
			prop.Type = "object"
		}
		props.Set(opt.Name, prop)

		if opt.Required {
			required = appendOnce(required, opt.Name)
		}
	}

	return props, required
}

// Schema assembles the complete JSON Schema for one integration's spec
// document. The result always has non-empty properties: when no recognized
// section yields fields, the generic instance-shape stub is substituted.
func Schema(doc *spec.Document, integration string) *jsonschema.Schema {
	name := doc.Name
	if name == "" {
		name = integration
	}
	s := shell(name)

	for _, file := range doc.Files {
		for _, opt := range file.Options {
			switch role(opt) {
			case roleInitConfig:
				props, req := Extract(opt.Options)
				if props.Len() == 0 {
					continue
				}
				s.Properties.Set("init_config", &jsonschema.Schema{
					Type:       "object",
					Properties: props,
					Required:   req,
				})
			case roleInstances:
				props, req := Extract(opt.Options)
				s.Properties.Set("instances", instancesProperty(props, req))
				s.Required = appendOnce(s.Required, "instances")
			case roleLogs:
				s.Properties.Set("logs", logsProperty())
			}
		}
	}

	if s.Properties.Len() == 0 {
		s.Properties.Set("instances", instancesProperty(genericInstanceProperties(), nil))
		s.Required = []string{"instances"}
	}

	return s
}

// Fallback builds the minimal generic schema persisted when an
// integration's spec cannot be fetched or parsed.
func Fallback(integration string) *jsonschema.Schema {
	s := shell(integration)
	s.Properties.Set("instances", instancesProperty(genericInstanceProperties(), nil))
	s.Required = []string{"instances"}
	return s
}

// Marshal serializes a schema to its canonical on-disk form.
func Marshal(s *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func shell(name string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Version:              schemaVersion,
		Title:                fmt.Sprintf("%s integration schema", name),
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// role reports which section marker an option carries. Only exact heads
// count: "instances/default" is a template reference, not a marker.
func role(opt spec.Option) string {
	marker := opt.Template
	if marker == "" {
		marker = opt.Name
	}
	switch marker {
	case roleInitConfig, roleInstances, roleLogs:
		return marker
	}
	return ""
}

func instancesProperty(props *orderedmap.OrderedMap[string, *jsonschema.Schema], required []string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

// logsProperty is the fixed shape attached for log-config sections; it is
// not derived from option extraction.
func logsProperty() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{Type: "string", Description: "Log source type, e.g. file."})
	props.Set("path", &jsonschema.Schema{Type: "string", Description: "Path to the log file to tail."})
	props.Set("source", &jsonschema.Schema{Type: "string", Description: "Source attribute applied to collected logs."})
	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
		},
	}
}

func genericInstanceProperties() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	props := jsonschema.NewProperties()
	for _, f := range commonTemplates["endpoint"] {
		props.Set(f.name, f.schema())
	}
	return props
}

func appendOnce(list []string, name string) []string {
	for _, have := range list {
		if have == name {
			return list
		}
	}
	return append(list, name)
}

func number(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}
