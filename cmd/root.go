// Package cmd implements the command-line interface for jofsarpur.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/jofsarpur/jofsarpur/color"
	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/download"
	"github.com/jofsarpur/jofsarpur/icon"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/jofsarpur/jofsarpur/ruv"
	"github.com/jofsarpur/jofsarpur/runner"
	"github.com/jofsarpur/jofsarpur/style"
	"github.com/jofsarpur/jofsarpur/util"
	"github.com/jofsarpur/jofsarpur/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	errInterrupted = errors.New("interrupted")
	errRunFailed   = errors.New("run finished with failures")
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	lo.Must0(rootCmd.MarkPersistentFlagFilename("config", "toml"))

	rootCmd.Flags().BoolP("dry-run", "d", false, "List what would be downloaded without fetching anything")
	rootCmd.Flags().Bool("debug", false, "Log at debug level")
}

// rootCmd downloads every configured series.
var rootCmd = &cobra.Command{
	Use:   constant.Jofsarpur,
	Short: "Download RÚV episodes into a local library",
	Long: style.New().Bold(true).Foreground(color.Accent).Render(constant.Jofsarpur) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Download RÚV episodes into a local library, named the way you like"),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(runDownloads(cmd, runOptions{
			configPath: lo.Must(cmd.Flags().GetString("config")),
			dryRun:     lo.Must(cmd.Flags().GetBool("dry-run")),
			debug:      lo.Must(cmd.Flags().GetBool("debug")),
		}))
	},
}

type runOptions struct {
	configPath string
	dryRun     bool
	debug      bool
}

func runDownloads(cmd *cobra.Command, opts runOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.Global.LogLevel
	if opts.debug {
		level = "debug"
	}
	if err := log.Setup(log.Options{Level: level, JSON: cfg.Global.LogJSON, Write: cfg.Global.LogWrite}); err != nil {
		return err
	}

	ffmpeg := download.NewFFmpeg(cfg.Global.FFmpeg)
	var downloader download.Downloader = ffmpeg
	if opts.dryRun {
		downloader = download.DryRun{FFmpeg: ffmpeg}
	} else {
		CheckDependencies(cfg.Global.FFmpeg)
	}

	client := ruv.New(ruv.Options{
		BaseURL:        cfg.Global.APIURL,
		Timeout:        cfg.Global.RequestTimeout,
		HighestVariant: cfg.Global.HighestVariant,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"config": cfg.Path, "dry_run": opts.dryRun, "series": strings.Join(cfg.SIDs(), ",")}).
		Infof("Processing %s", util.Quantify(len(cfg.Series), "series", "series"))

	summary := runner.New(client, downloader, runner.WithDryRun(opts.dryRun)).Run(ctx, cfg)
	cmd.Println(renderSummary(summary))

	if summary.DryRun {
		cmd.Printf("%s %s %s\n", icon.Get(icon.DryRun), style.Tag(color.White, color.Purple)("DRY RUN"), style.Faint("nothing was downloaded"))
	}
	if ctx.Err() != nil {
		cmd.Printf("%s %s\n", style.Fg(color.Warning)(icon.Get(icon.Cancel)), style.Faint("stopped before all episodes were processed"))
		return errInterrupted
	}
	return runError(summary)
}

// runError reports a summary with failures as errRunFailed so that the caller decides the exit status.
func runError(summary *runner.Summary) error {
	if summary.OK() {
		return nil
	}

	_, _, failed := summary.Totals()
	unlisted := lo.CountBy(summary.Series, func(r runner.SeriesResult) bool { return r.Err != nil })
	return fmt.Errorf("%w: %s, %s",
		errRunFailed,
		util.Quantify(unlisted, "series could not be listed", "series could not be listed"),
		util.Quantify(failed, "episode failed", "episodes failed"),
	)
}

// loadConfig reads the file at path, or the default configuration file when path is empty,
// and applies its presentation settings.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = where.ConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	icon.SetVariant(cfg.Global.Icons)
	style.SetColored(cfg.Global.Colored)
	return cfg, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if _, noColor := os.LookupEnv("NO_COLOR"); !noColor {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
