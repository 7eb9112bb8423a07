package cmd

import (
	"fmt"

	"github.com/jofsarpur/jofsarpur/color"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/icon"
	"github.com/jofsarpur/jofsarpur/style"
	"github.com/jofsarpur/jofsarpur/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget defines a filesystem resource eligible for cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"logs directory", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes files the program accumulates between runs.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove accumulated application files such as logs",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}
			anyCleared = true
			handleErr(filesystem.API().RemoveAll(target.location()))
			cmd.Printf("%s %s cleared\n", style.Fg(color.Success)(icon.Get(icon.Success)), target.name)
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
