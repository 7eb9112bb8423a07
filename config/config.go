// Package config loads the TOML configuration into an immutable Config.
//
// The reserved [global] table is read through a viper instance so every
// setting has a default and an environment override. All other top-level
// tables describe one series each and keep the order they have in the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/key"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

var (
	ErrMissingGlobal             = errors.New("missing [global] table")
	ErrMissingDownloadDirectory  = errors.New("missing download_directory in [global]")
	ErrRelativeDownloadDirectory = errors.New("download_directory must be an absolute path")
	ErrNoSeries                  = errors.New("no series configured")
	ErrMissingFilenames          = errors.New("missing filenames template")
	ErrInvalidRequestTimeout     = errors.New("request_timeout must be a positive duration with a unit, such as \"30s\"")
)

// Global holds the process-wide settings.
type Global struct {
	DownloadDirectory string
	FFmpeg            string
	APIURL            string
	RequestTimeout    time.Duration
	HighestVariant    bool

	LogLevel string
	LogJSON  bool
	LogWrite bool

	Icons   string
	Colored bool
}

// Series is the configuration of one series table.
type Series struct {
	SID       string
	Filenames string
	// Title replaces the title reported by the API when present.
	Title mo.Option[string]
	// Exceptions maps an episode pid to a template used instead of Filenames.
	Exceptions map[string]string
}

// Template returns the filename template that applies to the episode pid.
func (s Series) Template(pid string) string {
	if t, ok := s.Exceptions[pid]; ok {
		return t
	}
	return s.Filenames
}

// Config is the validated configuration of a run.
type Config struct {
	// Path is the file the configuration was loaded from, empty for Parse.
	Path   string
	Global Global
	Series []Series
}

// SIDs lists the configured series ids in file order.
func (c *Config) SIDs() []string {
	return lo.Map(c.Series, func(s Series, _ int) string { return s.SID })
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse validates raw TOML configuration.
func Parse(data []byte) (*Config, error) {
	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	if _, ok := tables[key.Global].(map[string]any); !ok {
		return nil, ErrMissingGlobal
	}

	global, err := parseGlobal(data)
	if err != nil {
		return nil, err
	}

	order, err := tableOrder(data)
	if err != nil {
		return nil, err
	}
	order = lo.Uniq(append(order, sortedKeys(tables)...))

	var series []Series
	for _, sid := range order {
		if sid == key.Global {
			continue
		}

		table, ok := tables[sid].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s is not a table", sid)
		}

		s, err := parseSeries(sid, table)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	if len(series) == 0 {
		return nil, ErrNoSeries
	}

	return &Config{Global: global, Series: series}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(constant.Jofsarpur)
	v.SetEnvKeyReplacer(EnvKeyReplacer)

	v.SetTypeByDefaultValue(true)
	for name, field := range Default {
		v.SetDefault(name, field.Value)
		lo.Must0(v.BindEnv(name))
	}
	return v
}

func parseGlobal(data []byte) (Global, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Global{}, fmt.Errorf("read [global]: %w", err)
	}

	dir := strings.TrimSpace(v.GetString(key.DownloadDirectory))
	if dir == "" {
		return Global{}, ErrMissingDownloadDirectory
	}

	dir, err := expandHome(dir)
	if err != nil {
		return Global{}, err
	}
	if !filepath.IsAbs(dir) {
		return Global{}, fmt.Errorf("%w: %q", ErrRelativeDownloadDirectory, dir)
	}

	timeout, err := parseTimeout(v.GetString(key.RequestTimeout))
	if err != nil {
		return Global{}, err
	}

	return Global{
		DownloadDirectory: filepath.Clean(dir),
		FFmpeg:            v.GetString(key.FFmpeg),
		APIURL:            v.GetString(key.APIURL),
		RequestTimeout:    timeout,
		HighestVariant:    v.GetBool(key.HighestVariant),
		LogLevel:          v.GetString(key.LogsLevel),
		LogJSON:           v.GetBool(key.LogsJson),
		LogWrite:          v.GetBool(key.LogsWrite),
		Icons:             v.GetString(key.IconsVariant),
		Colored:           v.GetBool(key.CliColored),
	}, nil
}

// parseTimeout only accepts durations with a unit, so a bare 30 is not read as nanoseconds.
func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRequestTimeout, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRequestTimeout, raw)
	}
	return d, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func parseSeries(sid string, table map[string]any) (Series, error) {
	s := Series{
		SID:        sid,
		Title:      mo.None[string](),
		Exceptions: make(map[string]string),
	}

	for name, raw := range table {
		value, ok := raw.(string)
		switch {
		case name == key.SeriesFilenames, name == key.SeriesTitle, strings.HasPrefix(name, key.SeriesExceptionPrefix):
			if !ok {
				return Series{}, fmt.Errorf("[%s] %s must be a string", sid, name)
			}
		default:
			continue
		}

		switch {
		case name == key.SeriesFilenames:
			s.Filenames = value
		case name == key.SeriesTitle:
			s.Title = mo.Some(value)
		default:
			s.Exceptions[strings.TrimPrefix(name, key.SeriesExceptionPrefix)] = value
		}
	}

	if strings.TrimSpace(s.Filenames) == "" {
		return Series{}, fmt.Errorf("[%s]: %w", sid, ErrMissingFilenames)
	}
	return s, nil
}
