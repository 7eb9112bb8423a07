package render

import (
	"strings"

	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/episode"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Placeholder names usable in filename templates.
const (
	FieldTitle         = "title"
	FieldEpisodeNumber = "episode_number"
	FieldEpisodeCount  = "episode_count"
	FieldSID           = "sid"
	FieldPID           = "pid"
	FieldEpisodeTitle  = "episode_title"
	FieldAirdate       = "airdate"
)

// FieldInfo documents a placeholder.
type FieldInfo struct {
	Name        string
	Kind        string
	Description string
	Example     string
}

// Documented lists every placeholder a template may reference.
var Documented = []FieldInfo{
	{FieldTitle, "string", "Series title, or the title set in the series table", "Kúlugúbbarnir"},
	{FieldEpisodeNumber, "int", "Episode number parsed from the episode title. Absent for titles without numbering", "4"},
	{FieldEpisodeCount, "int", "Number of episodes in the season when the episode title states it", "10"},
	{FieldSID, "string", "Series identifier", "30228"},
	{FieldPID, "string", "Episode identifier", "abc123"},
	{FieldEpisodeTitle, "string", "The episode's own title as listed by the catalog", "Þáttur 4 af 10"},
	{FieldAirdate, "date", "Date of first broadcast, YYYY-MM-DD by default. Takes a strftime layout such as {airdate:%Y}", "2022-08-23"},
}

var documentedNames = lo.Map(Documented, func(f FieldInfo, _ int) string { return f.Name })

// IsDocumented reports whether name is a known placeholder.
func IsDocumented(name string) bool {
	return lo.Contains(documentedNames, name)
}

func closestField(name string) string {
	return lo.MinBy(documentedNames, func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
}

// Fields maps placeholder names to int, string or time.Time values.
type Fields map[string]any

// FieldsOf builds the placeholder values of an episode. Optional values that are unknown are left out.
func FieldsOf(series config.Series, rec episode.Record) Fields {
	fields := Fields{
		FieldTitle:        pathSafe(series.Title.OrElse(rec.Title)),
		FieldSID:          pathSafe(rec.SID),
		FieldPID:          pathSafe(rec.PID),
		FieldEpisodeTitle: pathSafe(rec.EpisodeTitle),
	}

	if n, ok := rec.Number.Get(); ok {
		fields[FieldEpisodeNumber] = n
	}
	if n, ok := rec.Count.Get(); ok {
		fields[FieldEpisodeCount] = n
	}
	if t, ok := rec.Airdate.Get(); ok {
		fields[FieldAirdate] = t
	}

	return fields
}

var separators = strings.NewReplacer("/", "-", `\`, "-")

// pathSafe keeps values from introducing directories of their own.
func pathSafe(s string) string {
	return separators.Replace(s)
}
