package crawler

import "github.com/PuerkitoBio/goquery"

// Anchor is one detail-page link discovered during pagination
type Anchor struct {
	Href  string
	Text  string
	Title string
}

// Fetcher retrieves a URL and returns the parsed document
type Fetcher interface {
	Fetch(url string) (*goquery.Document, error)
}
