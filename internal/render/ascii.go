package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pbaille/moodlog/internal/domain"
	"github.com/pbaille/moodlog/internal/stats"
)

// Sparkline glyphs, lowest to highest, plus the gap marker.
var (
	sparkGlyphs = []rune("▁▂▃▄▅▆▇█")
	gapGlyph    = '·'
)

// noData marks an absent day in bar output
const noData = "(no data)"

// Sparkline renders a series as one glyph per day. Present values are
// clamped to [1,10] and mapped linearly onto the eight block heights;
// absent days render as the gap marker. Ties round away from zero.
func Sparkline(series []domain.DayValue) string {
	var sb strings.Builder
	for _, dv := range series {
		if !dv.HasData {
			sb.WriteRune(gapGlyph)
			continue
		}
		v := math.Max(1, math.Min(10, dv.Avg))
		idx := int(math.Round((v - 1) / 9 * float64(len(sparkGlyphs)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkGlyphs)-1 {
			idx = len(sparkGlyphs) - 1
		}
		sb.WriteRune(sparkGlyphs[idx])
	}
	return sb.String()
}

// BarRow renders one day's value as a bar of one to ten blocks, or the
// explicit no-data marker. Absent never renders as an empty bar; a half
// mean rounds up (2.5 gives three blocks).
func BarRow(dv domain.DayValue) string {
	if !dv.HasData {
		return noData
	}
	n := int(math.Round(dv.Avg))
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat("█", n)
}

// Trend prints the sparkline view of a series with a one-line summary
func Trend(w io.Writer, series []domain.DayValue, n int) {
	fmt.Fprintf(w, "\n=== Mood trend, last %d days ===\n", n)
	fmt.Fprintf(w, "curve: %s\n", Sparkline(series))

	labels := make([]string, len(series))
	for i, dv := range series {
		labels[i] = shortDay(dv.Day)
	}
	fmt.Fprintf(w, "dates: %s\n", strings.Join(labels, " "))

	summaryLine(w, series, n)
}

// BarChart prints one labeled bar row per day of the series
func BarChart(w io.Writer, series []domain.DayValue, n int) {
	fmt.Fprintf(w, "\n=== Mood bars, last %d days ===\n", n)
	for _, dv := range series {
		fmt.Fprintf(w, "%s | %s\n", shortDay(dv.Day), BarRow(dv))
	}
}

// SummaryTable prints the post-entry summary: a date/mean/bar table
// followed by the usual stats line.
func SummaryTable(w io.Writer, series []domain.DayValue, n int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Mean", "Bar"})
	for _, dv := range series {
		mean, bar := "-", ""
		if dv.HasData {
			mean = fmt.Sprintf("%.2f", dv.Avg)
			bar = BarRow(dv)
		}
		table.Append([]string{shortDay(dv.Day), mean, bar})
	}
	table.Render()

	summaryLine(w, series, n)
}

// Diary prints the most recent k noted entries in their original order
func Diary(w io.Writer, entries []domain.DiaryEntry, k int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No diary entries yet.")
		return
	}
	if k > len(entries) {
		k = len(entries)
	}
	fmt.Fprintf(w, "\n=== Last %d diary entries ===\n", k)
	for _, e := range entries[len(entries)-k:] {
		fmt.Fprintf(w, "%s (score %s)\n- %s\n\n", e.Day, e.Score, e.Note)
	}
}

func summaryLine(w io.Writer, series []domain.DayValue, n int) {
	count, mean, min, max := stats.Summary(series)
	if count == 0 {
		fmt.Fprintln(w, "No usable records in the selected range.")
		return
	}
	fmt.Fprintf(w, "days with data: %d/%d | mean: %.2f | min: %.2f | max: %.2f\n",
		count, n, mean, min, max)
}

// shortDay trims an ISO date down to MM-DD for compact console output
func shortDay(d string) string {
	if len(d) > 5 {
		return d[len(d)-5:]
	}
	return d
}
