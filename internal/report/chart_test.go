package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"estate-crawler/config"
	"estate-crawler/services/store"
)

func trendEntries(days int) []store.MetricsEntry {
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	entries := make([]store.MetricsEntry, 0, days)
	for i := 0; i < days; i++ {
		entries = append(entries, store.MetricsEntry{
			Date: base.AddDate(0, 0, i),
			Metrics: store.DailyMetrics{
				Date: store.DateKey(base.AddDate(0, 0, i)),
				Avgs: map[string]float64{
					"all":  1_000_000 + float64(i)*10_000,
					"koto": 900_000 - float64(i)*5_000,
				},
				Counts: map[string]int{"all": 10, "koto": 4},
			},
		})
	}
	return entries
}

func TestRenderTrendChart(t *testing.T) {
	dir := t.TempDir()
	categories := []config.Category{
		{Name: "all", Substring: ""},
		{Name: "koto", Substring: "江東区"},
		// No data for this one: its series is omitted, not an error
		{Name: "meguro", Substring: "目黒区"},
	}

	path, err := RenderTrendChart(trendEntries(5), categories, dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, TrendChartFile), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, len(data) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], "output is a PNG")
}

func TestRenderTrendChartEmptyRange(t *testing.T) {
	_, err := RenderTrendChart(nil, []config.Category{{Name: "all"}}, t.TempDir())
	assert.Error(t, err)
}

func TestRenderTrendChartNoSeriesData(t *testing.T) {
	entries := []store.MetricsEntry{
		{
			Date:    time.Now().UTC(),
			Metrics: store.DailyMetrics{Counts: map[string]int{"all": 0}},
		},
	}

	_, err := RenderTrendChart(entries, []config.Category{{Name: "all"}}, t.TempDir())
	assert.Error(t, err, "entries without averages produce no chartable series")
}
