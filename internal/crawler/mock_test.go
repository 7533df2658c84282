package crawler

import (
	"context"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"estate-crawler/pkg/errors"
)

// fakeFetcher serves canned HTML documents by URL for testing
type fakeFetcher struct {
	pages  map[string]string
	errs   map[string]error
	calls  []string
	resets int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{
		pages: pages,
		errs:  make(map[string]error),
	}
}

func (f *fakeFetcher) Fetch(url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, errors.NewNetwork("fake", "no page for "+url, nil)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *fakeFetcher) Reset() {
	f.resets++
}

// memStore implements store.Store in memory for testing
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (m *memStore) Scan(_ context.Context, prefix string, fn func(key string) error) error {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := fn(key); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) DeleteAll(_ context.Context, prefix string) error {
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}
