package convert

import "github.com/invopop/jsonschema"

// templateField is one field contributed by a common template reference.
type templateField struct {
	name        string
	typ         string
	description string
	def         any
}

// commonTemplates maps a normalized template name (the last path segment,
// so both "instances/http" and "init_config/http" hit "http") to the fixed
// bundle of fields it expands to. Unknown names contribute nothing.
var commonTemplates = map[string][]templateField{
	"endpoint": {
		{name: "host", typ: "string", description: "Host of the monitored endpoint."},
		{name: "port", typ: "integer", description: "Port of the monitored endpoint."},
		{name: "username", typ: "string", description: "Username for authentication."},
		{name: "password", typ: "string", description: "Password for authentication."},
	},
	"http": {
		{name: "timeout", typ: "number", description: "Request timeout in seconds.", def: 10},
		{name: "headers", typ: "object", description: "Headers to attach to every request."},
	},
	"default": {
		{name: "min_collection_interval", typ: "integer", description: "Minimum number of seconds between two collection runs.", def: 15},
	},
}

func templateFields(name string) []templateField {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			name = name[i+1:]
			break
		}
	}
	return commonTemplates[name]
}

func (f templateField) schema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        f.typ,
		Description: f.description,
	}
	if f.def != nil {
		s.Default = f.def
	}
	return s
}
