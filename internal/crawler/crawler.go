package crawler

import (
	"context"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"estate-crawler/config"
	"estate-crawler/logger"
	"estate-crawler/services/store"
)

// detailPageSuffix is appended to a listing URL to reach its summary page
const detailPageSuffix = "bukkengaiyo/"

// RunFetcher is the fetcher contract a crawl run needs: throttled fetching
// plus a counter reset at run start.
type RunFetcher interface {
	Fetcher
	Reset()
}

// Crawler drives one crawl run: clear listings, collect detail links, fetch
// and extract each listing, then aggregate and store the daily metrics.
type Crawler struct {
	cfg     *config.Config
	fetcher RunFetcher
	cache   *store.Cache
	log     *logger.Logger
}

// New creates a crawler
func New(cfg *config.Config, fetcher RunFetcher, cache *store.Cache) *Crawler {
	return &Crawler{
		cfg:     cfg,
		fetcher: fetcher,
		cache:   cache,
		log:     logger.ForCrawler(),
	}
}

// Run executes a full crawl run and returns the daily metrics it stored.
// Per-page and per-listing failures are logged and skipped; only store and
// configuration failures abort the run.
func (c *Crawler) Run(ctx context.Context) (*store.DailyMetrics, error) {
	log := c.log.WithField("run_id", uuid.NewString())

	c.fetcher.Reset()
	if err := c.cache.ClearListings(ctx); err != nil {
		return nil, err
	}

	collector := NewLinkCollector(c.fetcher, c.cfg.MaxPages, c.cfg.SampleRate)
	anchors := collector.Collect(c.cfg.StartURL)
	log.Info().Int("detail_links", len(anchors)).Msg("pagination complete")

	stored := 0
	for _, anchor := range anchors {
		detailURL := DetailURLFor(c.cfg.StartURL, anchor.Href)

		doc, err := c.fetcher.Fetch(detailURL)
		if err != nil {
			log.Warn().Err(err).Str("url", detailURL).Msg("skipping detail page")
			continue
		}

		listing := buildListing(doc, detailURL, anchor)
		if err := c.cache.StoreListing(ctx, listing); err != nil {
			log.Warn().Err(err).Str("url", detailURL).Msg("failed to store listing")
			continue
		}
		stored++

		event := log.Debug()
		if !c.cfg.Quiet {
			event = log.Info()
		}
		event.
			Str("url", listing.URL).
			Str("title", stringOr(listing.Title, "[no text]")).
			Interface("price", listing.Price).
			Interface("size", listing.Size).
			Msg("stored listing")
	}
	log.Info().Int("stored", stored).Int("skipped", len(anchors)-stored).Msg("detail fetch complete")

	listings, err := c.cache.AllListings(ctx)
	if err != nil {
		return nil, err
	}

	metrics := AggregateDaily(listings, c.cfg.Categories, time.Now().UTC())
	if err := c.cache.StoreDailyMetrics(ctx, metrics); err != nil {
		return nil, err
	}

	for _, category := range c.cfg.Categories {
		event := log.Info().
			Str("category", category.Name).
			Int("count", metrics.Counts[category.Name])
		if avg, ok := metrics.Avgs[category.Name]; ok {
			event = event.Float64("avg_price_per_size", avg)
		}
		event.Msg("daily metrics")
	}

	return &metrics, nil
}

// DetailURLFor resolves a collected anchor href against the start URL and
// appends the detail summary path segment
func DetailURLFor(startURL, href string) string {
	base, err := url.Parse(startURL)
	if err != nil {
		return href + detailPageSuffix
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href + detailPageSuffix
	}

	resolved := base.ResolveReference(ref)
	detail, err := resolved.Parse(detailPageSuffix)
	if err != nil {
		return resolved.String() + detailPageSuffix
	}
	return detail.String()
}

// buildListing assembles a listing record from a detail document and the
// anchor it was discovered through
func buildListing(doc *goquery.Document, detailURL string, anchor Anchor) store.Listing {
	title := anchor.Text
	if title == "" {
		title = anchor.Title
	}
	var titlePtr *string
	if title != "" {
		titlePtr = &title
	}

	return store.Listing{
		URL:       detailURL,
		Title:     titlePtr,
		Price:     ExtractPrice(doc),
		Size:      ExtractSize(doc),
		Completed: ExtractCompleted(doc),
		Location:  ExtractLocation(doc),
	}
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
