package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/jofsarpur/jofsarpur/color"
	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/key"
	"github.com/jofsarpur/jofsarpur/style"
	"github.com/samber/lo"
)

// Field represents a setting of the [global] table.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Name is the key as written inside the [global] table.
func (f *Field) Name() string {
	return strings.TrimPrefix(f.Key, key.Global+".")
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Jofsarpur + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON customizes JSON output to include the environment variable and type.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Name(),
		Env:         f.Env(),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Default holds the map of all [global] settings keyed by their full viper key.
var Default = make(map[string]Field)

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
	}

	register(key.DownloadDirectory, "", "Absolute directory all rendered filenames are placed under.\nRequired.")
	register(key.FFmpeg, "ffmpeg", "Name or path of the ffmpeg binary used to fetch streams")
	register(key.APIURL, constant.RUVGraphQL, "GraphQL endpoint of the catalog API")
	register(key.RequestTimeout, "1m", "Timeout of a single API request, as a duration with a unit such as 30s or 1m")
	register(key.HighestVariant, false, "Resolve HLS master playlists to their highest bandwidth variant")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsWrite, false, "Also write logs to a daily file in the logs directory")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"blue":     style.Fg(color.Blue),
	"purple":   style.Fg(color.Purple),
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			if value == "" {
				return style.Faint("(none)")
			}
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Name }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ typename .Value }}`))
