package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jofsarpur/jofsarpur/color"
	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/icon"
	"github.com/jofsarpur/jofsarpur/key"
	"github.com/jofsarpur/jofsarpur/render"
	"github.com/jofsarpur/jofsarpur/style"
	"github.com/jofsarpur/jofsarpur/util"
	"github.com/jofsarpur/jofsarpur/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	msg := fmt.Sprintf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)

	return errors.New(msg)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for inspecting the configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the configuration file",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd displays metadata and descriptions for the [global] settings.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the settings of the [global] table with their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = make([]config.Field, 0, len(keys))

			for _, k := range keys {
				if !strings.HasPrefix(k, key.Global+".") {
					k = key.Global + "." + k
				}
				if _, ok := config.Default[k]; !ok {
					handleErr(errUnknownKey(k))
				}

				fields = append(fields, config.Default[k])
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(lo.ToSlicePtr(fields)))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Println()
				cmd.Println()
			}
		}
		cmd.Println()
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	configCheckCmd.SetOut(os.Stdout)
}

// configCheckCmd loads the configuration and validates every template it contains.
var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file and list the configured series",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(lo.Must(cmd.Flags().GetString("config")))
		handleErr(err)

		var (
			rows    [][]string
			invalid int
		)
		for _, series := range cfg.Series {
			rows = append(rows, []string{series.SID, series.Title.OrElse(style.Faint("(from catalog)")), "", checkTemplate(series.Filenames, &invalid)})

			pids := lo.Keys(series.Exceptions)
			sort.Strings(pids)
			for _, pid := range pids {
				rows = append(rows, []string{"", "", pid, checkTemplate(series.Exceptions[pid], &invalid)})
			}
		}

		cmd.Println(style.Title(util.Quantify(len(cfg.Series), "series", "series")))
		cmd.Printf("%s %s\n", style.Faint("Config:"), cfg.Path)
		cmd.Printf("%s %s\n\n", style.Faint("Download directory:"), cfg.Global.DownloadDirectory)
		cmd.Println(renderTable(
			[]string{"SID", "Title", "Exception", "Template"},
			rows,
			nil,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))

		if invalid > 0 {
			handleErr(fmt.Errorf("%d invalid template(s)", invalid))
		}
		cmd.Printf("%s configuration is valid\n", style.Fg(color.Success)(icon.Get(icon.Success)))
	},
}

func checkTemplate(raw string, invalid *int) string {
	if _, err := render.Parse(raw); err != nil {
		*invalid++
		return style.Fg(color.Failure)(err.Error())
	}
	return raw
}

func init() {
	configCmd.AddCommand(configFieldsCmd)
	configFieldsCmd.SetOut(os.Stdout)
}

// configFieldsCmd lists the placeholders usable in filename templates.
var configFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields available in filename templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		const descIndent = 4

		for i, field := range render.Documented {
			cmd.Printf("%s %s\n",
				style.Fg(color.Purple)("{"+field.Name+"}"),
				style.Faint(field.Kind),
			)
			description := wordwrap.String(field.Description, width-descIndent)
			cmd.Println(indent.String(description, descIndent))
			cmd.Printf("%s%s %s\n", strings.Repeat(" ", descIndent), style.Fg(color.Blue)("e.g."), field.Example)

			if i < len(render.Documented)-1 {
				cmd.Println()
			}
		}
	},
}

// sampleSeries is written by config init so that a fresh file passes config check.
var sampleSeries = map[string]any{
	"30228": map[string]any{
		key.SeriesFilenames: "{title}/S01E{episode_number:02d}.mp4",
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
	configInitCmd.Flags().String("download-directory", "~/Videos/RUV", "Value of download_directory in the new file")
}

// configInitCmd writes a starter configuration with every [global] default.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			force = lo.Must(cmd.Flags().GetBool("force"))
			dir   = lo.Must(cmd.Flags().GetString("download-directory"))
			path  = lo.Must(cmd.Flags().GetString("config"))
		)
		if path == "" {
			path = where.UserConfigFile()
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))

		exists, err := filesystem.IsFile(path)
		handleErr(err)
		if exists && !force {
			if !interactive {
				handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", path))
			}

			var overwrite bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("%s already exists. Overwrite?", path),
				Default: false,
			}, &overwrite))
			if !overwrite {
				return
			}
		}

		if interactive && !cmd.Flags().Changed("download-directory") {
			handleErr(survey.AskOne(&survey.Input{
				Message: "Where should episodes be downloaded to?",
				Default: dir,
			}, &dir, survey.WithValidator(survey.Required)))
		}

		global := lo.MapEntries(config.Default, func(_ string, f config.Field) (string, any) {
			return f.Name(), f.Value
		})
		directory := config.Default[key.DownloadDirectory]
		global[directory.Name()] = dir

		doc := lo.Assign(map[string]any{key.Global: global}, sampleSeries)
		data, err := toml.Marshal(doc)
		handleErr(err)

		handleErr(filesystem.EnsureParent(path))
		handleErr(filesystem.API().WriteFile(path, data, 0o644))

		cmd.Printf(
			"%s wrote config to %s\n",
			style.Fg(color.Success)(icon.Get(icon.Success)),
			path,
		)
	},
}

func init() {
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.SetOut(os.Stdout)
}

// configSchemaCmd prints the JSON Schema of the configuration file for editor integration.
var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(config.Schema()))
	},
}
