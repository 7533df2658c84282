package crawler

import (
	"math"
	mathrand "math/rand"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"estate-crawler/logger"
)

const (
	// detailLinkSelector matches the anchors of listing detail pages
	detailLinkSelector = ".property_unit-title a"
	// pageLinkSelector is scanned for numeric pagination anchors
	pageLinkSelector = ".pagination_set-nav a, .pagination_set a, a"
)

var numericPageText = regexp.MustCompile(`^\d+$`)

// LinkCollector walks listing-index pages breadth-first, collecting detail
// anchors and discovering further pages through numeric pagination links.
type LinkCollector struct {
	fetcher    Fetcher
	maxPages   int     // <= 0 means unlimited
	sampleRate float64 // per-page sampling of detail anchors
	rnd        *mathrand.Rand
	log        *logger.Logger
}

// NewLinkCollector creates a collector over the given fetcher
func NewLinkCollector(fetcher Fetcher, maxPages int, sampleRate float64) *LinkCollector {
	return &LinkCollector{
		fetcher:    fetcher,
		maxPages:   maxPages,
		sampleRate: sampleRate,
		rnd:        mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		log:        logger.ForCollector(),
	}
}

// Collect traverses pages starting from startURL and returns the collected
// detail anchors, deduplicated by raw href (first occurrence wins). Pages
// that fail to fetch are skipped, never fatal.
func (c *LinkCollector) Collect(startURL string) []Anchor {
	visited := make(map[string]bool)
	queue := []string{startURL}
	var collected []Anchor
	pages := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		pages++
		if c.maxPages > 0 && pages > c.maxPages {
			break
		}

		doc, err := c.fetcher.Fetch(current)
		if err != nil {
			c.log.Warn().Err(err).Str("page", current).Msg("skipping page")
			continue
		}

		candidates := detailAnchors(doc)
		collected = append(collected, c.samplePage(candidates)...)

		for _, pageURL := range paginationLinks(doc, current) {
			if !visited[pageURL] {
				queue = append(queue, pageURL)
			}
		}
	}

	c.log.Debug().
		Int("pages", pages).
		Int("anchors", len(collected)).
		Msg("pagination finished")

	return dedupeByHref(collected)
}

// detailAnchors extracts the detail-link candidates of one page. Anchors
// without an href are dropped.
func detailAnchors(doc *goquery.Document) []Anchor {
	var anchors []Anchor
	doc.Find(detailLinkSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		anchors = append(anchors, Anchor{
			Href:  href,
			Text:  strings.TrimSpace(a.Text()),
			Title: strings.TrimSpace(a.AttrOr("title", "")),
		})
	})
	return anchors
}

// paginationLinks finds numeric page anchors and resolves them against the
// current page URL. Unresolvable hrefs are silently skipped.
func paginationLinks(doc *goquery.Document, current string) []string {
	base, err := url.Parse(current)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find(pageLinkSelector).Each(func(_ int, a *goquery.Selection) {
		if !numericPageText.MatchString(strings.TrimSpace(a.Text())) {
			return
		}
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links
}

// samplePage takes a random sample of one page's candidates, without
// replacement and independent of other pages, preserving page order. A rate
// >= 1 keeps everything; a rate of 0 keeps nothing.
func (c *LinkCollector) samplePage(candidates []Anchor) []Anchor {
	if c.sampleRate >= 1.0 {
		return candidates
	}

	n := int(math.Ceil(float64(len(candidates)) * c.sampleRate))
	if n <= 0 {
		return nil
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	indices := c.rnd.Perm(len(candidates))[:n]
	sort.Ints(indices)

	sampled := make([]Anchor, 0, n)
	for _, i := range indices {
		sampled = append(sampled, candidates[i])
	}
	return sampled
}

// dedupeByHref drops anchors whose raw href was already seen, keeping the
// first occurrence and the original order
func dedupeByHref(anchors []Anchor) []Anchor {
	seen := make(map[string]bool, len(anchors))
	deduped := make([]Anchor, 0, len(anchors))
	for _, a := range anchors {
		if seen[a.Href] {
			continue
		}
		seen[a.Href] = true
		deduped = append(deduped, a)
	}
	return deduped
}
