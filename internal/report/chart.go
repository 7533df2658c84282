package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"estate-crawler/config"
	"estate-crawler/services/store"
)

// TrendChartFile is the artifact name the email report expects
const TrendChartFile = "price_size_trend.png"

// categoryColors is the fixed color theme of the combined trend chart
var categoryColors = map[string]string{
	"all":       "D62728",
	"koto":      "1F77B4",
	"kamedo":    "00E272",
	"shinagawa": "9467BD",
	"minamioi":  "C5B0D5",
	"meguro":    "2CA02C",
	"honcho":    "74C476",
}

const fallbackColor = "6B7280"

// RenderTrendChart renders one line series per category over the given daily
// metrics entries and writes the combined PNG into outDir. Categories with no
// data points are omitted; an empty range is an error. Returns the written
// path.
func RenderTrendChart(entries []store.MetricsEntry, categories []config.Category, outDir string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no metrics entries to chart")
	}

	var series []chart.Series
	var minValue, maxValue float64
	first := true

	for _, category := range categories {
		var xs []time.Time
		var ys []float64
		for _, entry := range entries {
			value, ok := entry.Metrics.Avgs[category.Name]
			if !ok {
				continue
			}
			xs = append(xs, entry.Date)
			ys = append(ys, value)

			if first || value < minValue {
				minValue = value
			}
			if first || value > maxValue {
				maxValue = value
			}
			first = false
		}
		if len(xs) == 0 {
			continue
		}

		series = append(series, chart.TimeSeries{
			Name: capitalize(category.Name),
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(colorFor(category.Name)),
				StrokeWidth: 3,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	if len(series) == 0 {
		return "", fmt.Errorf("no category had chartable values")
	}

	lower := minValue * 0.95
	if lower < 0 {
		lower = 0
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Price per Size (Last %d days)", len(entries)),
		Width: 900,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01/02"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lower, Max: maxValue * 1.05},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create graph dir: %w", err)
	}

	path := filepath.Join(outDir, TrendChartFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return path, nil
}

func colorFor(name string) string {
	if color, ok := categoryColors[name]; ok {
		return color
	}
	return fallbackColor
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
