package cmd

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jofsarpur/jofsarpur/color"
	"github.com/jofsarpur/jofsarpur/icon"
	"github.com/jofsarpur/jofsarpur/runner"
	"github.com/jofsarpur/jofsarpur/style"
	"github.com/muesli/reflow/truncate"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const errorColumnWidth = 60

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

func statusIcon(result runner.SeriesResult) string {
	switch {
	case !result.OK():
		return style.Fg(color.Failure)(icon.Get(icon.Fail))
	case result.Downloaded == 0 && result.Skipped > 0:
		return style.Fg(color.Gray)(icon.Get(icon.Skip))
	default:
		return style.Fg(color.Success)(icon.Get(icon.Success))
	}
}

// renderSummary lays out one row per series and a footer with the totals.
func renderSummary(summary *runner.Summary) string {
	rows := make([][]string, 0, len(summary.Series))
	for _, result := range summary.Series {
		title := result.Title
		if title == "" {
			title = style.Faint("(unknown)")
		}

		note := ""
		if result.Err != nil {
			note = style.Fg(color.Failure)(truncate.StringWithTail(result.Err.Error(), errorColumnWidth, "…"))
		}

		rows = append(rows, []string{
			statusIcon(result),
			title,
			result.SID,
			strconv.Itoa(result.Downloaded),
			strconv.Itoa(result.Skipped),
			strconv.Itoa(result.Failed),
			note,
		})
	}

	downloaded, skipped, failed := summary.Totals()
	heading := "Downloaded"
	if summary.DryRun {
		heading = "Pending"
	}

	return renderTable(
		[]string{"", "Series", "SID", heading, "Skipped", "Failed", "Error"},
		rows,
		[]string{"", "Total", "", strconv.Itoa(downloaded), strconv.Itoa(skipped), strconv.Itoa(failed), ""},
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}
