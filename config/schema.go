package config

import (
	"regexp"
	"sort"

	"github.com/invopop/jsonschema"
	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/key"
	"github.com/samber/lo"
)

// seriesTable mirrors a series table for schema generation only.
type seriesTable struct {
	Filenames string `json:"filenames" jsonschema:"required,description=Filename template relative to download_directory"`
	Title     string `json:"title,omitempty" jsonschema:"description=Replaces the series title reported by the catalog"`
}

func (f *Field) schemaType() string {
	switch f.typeName() {
	case "bool":
		return "boolean"
	case "int":
		return "integer"
	default:
		return "string"
	}
}

// Schema describes the configuration file as a JSON Schema.
// The [global] table is generated from Default, every other table is a series.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}

	series := reflector.Reflect(&seriesTable{})
	series.Version = ""
	series.PatternProperties = map[string]*jsonschema.Schema{
		"^" + regexp.QuoteMeta(key.SeriesExceptionPrefix): {
			Type:        "string",
			Description: "Filename template for the single episode whose pid follows the prefix",
		},
	}
	series.AdditionalProperties = jsonschema.FalseSchema

	directory := Default[key.DownloadDirectory]
	global := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		Required:             []string{directory.Name()},
		AdditionalProperties: jsonschema.FalseSchema,
	}

	keys := lo.Keys(Default)
	sort.Strings(keys)
	for _, k := range keys {
		field := Default[k]
		global.Properties.Set(field.Name(), &jsonschema.Schema{
			Type:        field.schemaType(),
			Description: field.Description,
			Default:     field.Value,
		})
	}

	root := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Title:                constant.Jofsarpur + " configuration",
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		Required:             []string{key.Global},
		AdditionalProperties: series,
	}
	root.Properties.Set(key.Global, global)

	return root
}
