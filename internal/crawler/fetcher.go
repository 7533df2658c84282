package crawler

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"estate-crawler/helpers"
	"estate-crawler/logger"
	"estate-crawler/pkg/errors"
)

// ThrottledFetcher wraps HTTP fetching so that every Nth request is followed
// by a fixed delay. The request counter is owned by the instance and reset at
// the start of each crawl run; failed requests count toward the window since
// they still hit the remote server.
type ThrottledFetcher struct {
	window int
	delay  time.Duration
	count  int
	sleep  func(time.Duration)
	log    *logger.Logger
}

// NewThrottledFetcher creates a fetcher that sleeps for delay after every
// window requests. A window <= 0 disables throttling.
func NewThrottledFetcher(window int, delay time.Duration) *ThrottledFetcher {
	return &ThrottledFetcher{
		window: window,
		delay:  delay,
		sleep:  time.Sleep,
		log:    logger.ForCrawler(),
	}
}

// Reset clears the request counter at the start of a crawl run
func (f *ThrottledFetcher) Reset() {
	f.count = 0
}

// Fetch retrieves the URL and parses it into a document. Network failures and
// non-2xx statuses surface as a network error the caller may skip.
func (f *ThrottledFetcher) Fetch(url string) (*goquery.Document, error) {
	body, fetchErr := helpers.FetchWithRandomHeaders(url)
	f.throttle()

	if fetchErr != nil {
		return nil, errors.NewNetwork("fetcher", "failed to fetch "+url, fetchErr)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing("fetcher", "failed to parse "+url, err)
	}
	return doc, nil
}

func (f *ThrottledFetcher) throttle() {
	f.count++
	if f.window <= 0 || f.count%f.window != 0 {
		return
	}

	f.log.Debug().
		Int("request_count", f.count).
		Dur("delay", f.delay).
		Msg("throttling")
	f.sleep(f.delay)
}
