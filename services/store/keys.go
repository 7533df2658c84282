package store

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// ListingPrefix is the key prefix for listing records
	ListingPrefix = "real_state:"
	// MetricsPrefix is the key prefix for daily metrics records
	MetricsPrefix = "daily_metrics:"
)

// ListingKey derives the storage key for a listing URL. The hash only needs
// to be stable across runs so repeated writes for the same URL overwrite.
func ListingKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return ListingPrefix + hex.EncodeToString(sum[:])
}

// MetricsKey derives the storage key for a daily metrics date string. Dates
// are stored unhashed so keys stay human-inspectable and unique per day.
func MetricsKey(date string) string {
	return MetricsPrefix + date
}

// DateKey formats a time as the YYYY_MM_DD metrics date key, in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006_01_02")
}
