package runner

import "github.com/samber/lo"

// SeriesResult counts what happened to the episodes of one series.
type SeriesResult struct {
	SID   string
	Title string

	Downloaded int
	Skipped    int
	Failed     int

	// Err is set when the episode list could not be fetched.
	Err error
}

// OK reports whether every episode of the series was either downloaded or skipped.
func (r SeriesResult) OK() bool {
	return r.Err == nil && r.Failed == 0
}

// Summary is the outcome of a run, one result per configured series in config order.
type Summary struct {
	Series []SeriesResult
	DryRun bool
}

// Totals adds up the episode counts of all series.
func (s *Summary) Totals() (downloaded, skipped, failed int) {
	downloaded = lo.SumBy(s.Series, func(r SeriesResult) int { return r.Downloaded })
	skipped = lo.SumBy(s.Series, func(r SeriesResult) int { return r.Skipped })
	failed = lo.SumBy(s.Series, func(r SeriesResult) int { return r.Failed })
	return
}

// OK reports whether the run finished without any failure.
func (s *Summary) OK() bool {
	return lo.EveryBy(s.Series, func(r SeriesResult) bool { return r.OK() })
}
