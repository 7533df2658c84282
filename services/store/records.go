package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estate-crawler/pkg/errors"
)

// Listing is one scraped property record, keyed by its detail-page URL.
// Optional fields are pointers: nil means the value was absent or no
// extraction strategy succeeded.
type Listing struct {
	URL       string    `json:"url"`
	Title     *string   `json:"title"`
	Price     *int64    `json:"price"`
	Size      *float64  `json:"size"`
	Completed *string   `json:"completed"`
	Location  *string   `json:"location"`
	CachedAt  time.Time `json:"cached_at"`
}

// DailyMetrics is one aggregate record per UTC calendar day. A category with
// no qualifying listings has no Avgs entry but keeps a zero Counts entry.
type DailyMetrics struct {
	Date     string             `json:"date"`
	Avgs     map[string]float64 `json:"avgs"`
	Counts   map[string]int     `json:"counts"`
	CachedAt time.Time          `json:"cached_at"`
}

// Cache layers the listing and daily-metrics record abstraction over a Store.
type Cache struct {
	store Store
}

// NewCache creates a record cache on top of a store
func NewCache(s Store) *Cache {
	return &Cache{store: s}
}

// ClearListings removes every listing record. Metrics records are untouched.
func (c *Cache) ClearListings(ctx context.Context) error {
	return c.store.DeleteAll(ctx, ListingPrefix)
}

// StoreListing writes a listing under its URL-derived key, stamping CachedAt
func (c *Cache) StoreListing(ctx context.Context, listing Listing) error {
	listing.CachedAt = time.Now().UTC()

	payload, err := json.Marshal(listing)
	if err != nil {
		return errors.NewStore("cache", "failed to encode listing "+listing.URL, err)
	}
	return c.store.Put(ctx, ListingKey(listing.URL), payload)
}

// AllListings reads back every stored listing. Malformed payloads are treated
// as cache misses and skipped.
func (c *Cache) AllListings(ctx context.Context) ([]Listing, error) {
	var listings []Listing
	err := c.store.Scan(ctx, ListingPrefix, func(key string) error {
		payload, err := c.store.Get(ctx, key)
		if err != nil {
			return err
		}
		if payload == nil {
			return nil
		}

		var listing Listing
		if err := json.Unmarshal(payload, &listing); err != nil {
			return nil
		}
		listings = append(listings, listing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// StoreDailyMetrics writes the metrics record for its date, overwriting any
// prior record for the same day
func (c *Cache) StoreDailyMetrics(ctx context.Context, metrics DailyMetrics) error {
	metrics.CachedAt = time.Now().UTC()

	payload, err := json.Marshal(metrics)
	if err != nil {
		return errors.NewStore("cache", "failed to encode metrics for "+metrics.Date, err)
	}
	return c.store.Put(ctx, MetricsKey(metrics.Date), payload)
}

// MetricsFor reads the metrics record for a date key, or nil when the day has
// no record or the payload is corrupt.
func (c *Cache) MetricsFor(ctx context.Context, date string) (*DailyMetrics, error) {
	payload, err := c.store.Get(ctx, MetricsKey(date))
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	var metrics DailyMetrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil, nil
	}
	return &metrics, nil
}

// MetricsEntry pairs a day with its stored record for ranged reads
type MetricsEntry struct {
	Date    time.Time
	Metrics DailyMetrics
}

// LastNDaysMetrics returns the records of the last n days (today included) in
// ascending date order, omitting days with no stored record. An entirely
// empty range yields an empty result, never an error.
func (c *Cache) LastNDaysMetrics(ctx context.Context, n int) ([]MetricsEntry, error) {
	var entries []MetricsEntry
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		metrics, err := c.MetricsFor(ctx, DateKey(day))
		if err != nil {
			return nil, err
		}
		if metrics == nil {
			continue
		}
		entries = append(entries, MetricsEntry{Date: day, Metrics: *metrics})
	}
	return entries, nil
}

// TodayMetrics returns today's record, or an error when no crawl has written
// one yet.
func (c *Cache) TodayMetrics(ctx context.Context) (*DailyMetrics, error) {
	date := DateKey(time.Now())
	metrics, err := c.MetricsFor(ctx, date)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, fmt.Errorf("no metrics stored for %s", date)
	}
	return metrics, nil
}
