package cmd

import (
	"errors"
	"testing"

	"github.com/jofsarpur/jofsarpur/config"
	"github.com/jofsarpur/jofsarpur/runner"
	"github.com/jofsarpur/jofsarpur/style"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderSummary(t *testing.T) {
	style.SetColored(false)

	Convey("Given a summary with a failed and a finished series", t, func() {
		summary := &runner.Summary{Series: []runner.SeriesResult{
			{SID: "30228", Title: "Kúlugúbbarnir", Downloaded: 2, Skipped: 8},
			{SID: "31648", Err: errors.New("getEpisode: status 503")},
		}}

		out := renderSummary(summary)

		Convey("Every series has a row", func() {
			So(out, ShouldContainSubstring, "Kúlugúbbarnir")
			So(out, ShouldContainSubstring, "30228")
			So(out, ShouldContainSubstring, "31648")
		})

		Convey("Series errors are shown", func() {
			So(out, ShouldContainSubstring, "getEpisode: status 503")
		})

		Convey("Totals are in the footer", func() {
			So(out, ShouldContainSubstring, "TOTAL")
			So(out, ShouldContainSubstring, "DOWNLOADED")
		})
	})

	Convey("A dry run reports pending episodes", t, func() {
		out := renderSummary(&runner.Summary{DryRun: true})
		So(out, ShouldContainSubstring, "PENDING")
	})
}

func TestRenderTable(t *testing.T) {
	Convey("Short rows are padded", t, func() {
		out := renderTable([]string{"a", "b"}, [][]string{{"only"}}, nil, nil)
		So(out, ShouldContainSubstring, "only")
	})

	Convey("No headers renders nothing", t, func() {
		So(renderTable(nil, [][]string{{"x"}}, nil, nil), ShouldBeEmpty)
	})
}

func TestExposedEnv(t *testing.T) {
	Convey("Every global setting and the config path are listed", t, func() {
		names := exposedEnv()
		So(len(names), ShouldEqual, len(config.Default)+1)
		So(names, ShouldContain, "JOFSARPUR_CONFIG_PATH")
		So(names, ShouldContain, "JOFSARPUR_GLOBAL_DOWNLOAD_DIRECTORY")
	})
}

func TestRunError(t *testing.T) {
	Convey("A clean run is not an error", t, func() {
		summary := &runner.Summary{Series: []runner.SeriesResult{{SID: "30228", Downloaded: 3}}}
		So(runError(summary), ShouldBeNil)
	})

	Convey("Failures are returned instead of exiting", t, func() {
		summary := &runner.Summary{Series: []runner.SeriesResult{
			{SID: "30228", Downloaded: 1, Failed: 2},
			{SID: "31648", Err: errors.New("getEpisode: status 503")},
		}}

		err := runError(summary)
		So(errors.Is(err, errRunFailed), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "1 series could not be listed")
		So(err.Error(), ShouldContainSubstring, "2 episodes failed")
	})
}
