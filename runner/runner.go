// Package runner drives a download run: every configured series, every episode, one at a time.
package runner

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/download"
	"github.com/jofsarpur/jofsarpur/episode"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/jofsarpur/jofsarpur/render"
)

// Catalog lists episodes and resolves their streams.
type Catalog interface {
	FetchEpisodes(ctx context.Context, sid string) ([]episode.Record, error)
	ResolveStreamURL(ctx context.Context, sid, pid string) (string, error)
}

// Runner processes configured series sequentially.
type Runner struct {
	catalog    Catalog
	downloader download.Downloader
	dryRun     bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDryRun leaves the filesystem untouched: no directories are created.
// Pair it with download.DryRun to skip the fetches as well.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// New returns a Runner using catalog for metadata and downloader for media.
func New(catalog Catalog, downloader download.Downloader, opts ...Option) *Runner {
	r := &Runner{catalog: catalog, downloader: downloader}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every series of cfg. Failures are recorded in the summary and never stop the run;
// only a cancelled context does.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) *Summary {
	summary := &Summary{DryRun: r.dryRun}

	for _, series := range cfg.Series {
		if ctx.Err() != nil {
			break
		}
		summary.Series = append(summary.Series, r.runSeries(ctx, cfg.Global, series))
	}

	return summary
}

func (r *Runner) runSeries(ctx context.Context, global config.Global, series config.Series) SeriesResult {
	result := SeriesResult{SID: series.SID, Title: series.Title.OrEmpty()}
	logger := log.WithFields(log.Fields{"sid": series.SID})

	records, err := r.catalog.FetchEpisodes(ctx, series.SID)
	if err != nil {
		logger.Warnf("Fetching episodes failed: %v", err)
		result.Err = err
		return result
	}

	if result.Title == "" && len(records) > 0 {
		result.Title = records[0].Title
	}

	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		switch r.runEpisode(ctx, global, series, rec) {
		case outcomeDownloaded:
			result.Downloaded++
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
	}

	return result
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSkipped
	outcomeDownloaded
	outcomeCancelled
)

func (r *Runner) runEpisode(ctx context.Context, global config.Global, series config.Series, rec episode.Record) outcome {
	logger := log.WithFields(log.Fields{"sid": rec.SID, "pid": rec.PID})

	resolve := render.RenderPath
	if r.dryRun {
		resolve = render.Destination
	}

	dest, err := resolve(global, series, rec)
	if err != nil {
		logger.Warnf("Downloading %s: Failed: %v", rec, err)
		return outcomeFailed
	}

	exists, err := filesystem.IsFile(dest)
	if err != nil {
		logger.Warnf("Downloading %s: Failed: %v", rec, err)
		return outcomeFailed
	}
	if exists {
		logger.Infof("Already downloaded %s: Skipping.", rec)
		return outcomeSkipped
	}

	url, err := r.catalog.ResolveStreamURL(ctx, rec.SID, rec.PID)
	if err != nil {
		logger.Warnf("Downloading %s: Failed: %v", rec, err)
		return outcomeFailed
	}
	rec = rec.WithStreamURL(url)

	logger.Infof("Downloading %s", rec)
	start := time.Now()

	if err := r.downloader.Fetch(ctx, rec.StreamURL, dest); err != nil {
		if ctx.Err() != nil {
			logger.Warnf("Downloading %s: Cancelled.", rec)
			return outcomeCancelled
		}
		logger.Warnf("Downloading %s: Failed: %v", rec, err)
		return outcomeFailed
	}

	if r.dryRun {
		logger.Infof("Downloading %s: Done (dry run).", rec)
		return outcomeDownloaded
	}

	size := "unknown size"
	if info, err := filesystem.API().Stat(dest); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	logger.WithField("destination", dest).
		Infof("Downloading %s: Done (%s in %s).", rec, size, time.Since(start).Round(time.Second))
	return outcomeDownloaded
}
