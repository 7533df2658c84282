package crawler

import (
	"strings"
	"time"

	"estate-crawler/config"
	"estate-crawler/services/store"
)

// Ratio returns the price-per-size ratio of a listing. It is defined only
// when both price and size are present and size is positive; otherwise the
// listing contributes to no category.
func Ratio(listing store.Listing) (float64, bool) {
	if listing.Price == nil || listing.Size == nil || *listing.Size <= 0 {
		return 0, false
	}
	return float64(*listing.Price) / *listing.Size, true
}

// AggregateDaily computes the per-category average price/size ratios and
// counts for one UTC day. A category with an empty substring takes every
// listing with a defined ratio; named categories additionally require the
// location to contain their substring. Categories with no qualifying
// listings get no average but keep a zero count.
func AggregateDaily(listings []store.Listing, categories []config.Category, day time.Time) store.DailyMetrics {
	metrics := store.DailyMetrics{
		Date:   store.DateKey(day),
		Avgs:   make(map[string]float64, len(categories)),
		Counts: make(map[string]int, len(categories)),
	}

	for _, category := range categories {
		var sum float64
		var count int

		for _, listing := range listings {
			ratio, ok := Ratio(listing)
			if !ok {
				continue
			}
			if category.Substring != "" {
				if listing.Location == nil || !strings.Contains(*listing.Location, category.Substring) {
					continue
				}
			}
			sum += ratio
			count++
		}

		metrics.Counts[category.Name] = count
		if count > 0 {
			metrics.Avgs[category.Name] = sum / float64(count)
		}
	}

	return metrics
}
