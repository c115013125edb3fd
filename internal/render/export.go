package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/pbaille/moodlog/internal/domain"
)

// ExportPNG writes a line chart of the series as a PNG and returns the
// output path. An empty outPath defaults to trend_last{n}.png inside
// dataDir. Absent days are left out of the plotted line.
func ExportPNG(series []domain.DayValue, n int, dataDir, outPath string) (string, error) {
	out, err := resolveOutPath(dataDir, outPath, n, "png")
	if err != nil {
		return "", err
	}

	var xs, ys []float64
	var ticks []chart.Tick
	step := n / 10
	if step < 1 {
		step = 1
	}
	for i, dv := range series {
		if i%step == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: shortDay(dv.Day)})
		}
		if !dv.HasData {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, dv.Avg)
	}
	if len(xs) == 0 {
		return "", fmt.Errorf("no data points to plot")
	}

	xMax := float64(n - 1)
	if xMax <= 0 {
		xMax = 1
	}
	graph := chart.Chart{
		Title: fmt.Sprintf("Mood Trend (last %d days)", n),
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 1, Max: 10},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return out, nil
}

// ExportHTML writes an interactive line chart of the series and returns the
// output path. An empty outPath defaults to trend_last{n}.html inside
// dataDir. Absent days become null points so gaps stay visible.
func ExportHTML(series []domain.DayValue, n int, dataDir, outPath string) (string, error) {
	out, err := resolveOutPath(dataDir, outPath, n, "html")
	if err != nil {
		return "", err
	}

	labels := make([]string, len(series))
	points := make([]opts.LineData, len(series))
	present := 0
	for i, dv := range series {
		labels[i] = shortDay(dv.Day)
		if dv.HasData {
			points[i] = opts.LineData{Value: dv.Avg}
			present++
		} else {
			points[i] = opts.LineData{Value: nil}
		}
	}
	if present == 0 {
		return "", fmt.Errorf("no data points to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Mood Trend (last %d days)", n)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 1, Max: 10}),
	)
	line.SetXAxis(labels).AddSeries("score", points)

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return out, nil
}

// resolveOutPath picks the conventional trend_last{n} name under dataDir
// when no explicit path was given, creating directories either way.
func resolveOutPath(dataDir, outPath string, n int, ext string) (string, error) {
	if outPath == "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", fmt.Errorf("create data dir: %w", err)
		}
		return filepath.Join(dataDir, fmt.Sprintf("trend_last%d.%s", n, ext)), nil
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	return outPath, nil
}
