package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network, timeout and non-2xx fetch errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML or stored-record parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeExtraction represents a field-extraction miss
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeStore represents store-related errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// CrawlError represents a crawl-specific error
type CrawlError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *CrawlError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *CrawlError) Unwrap() error {
	return e.Err
}

// SkippableByRun reports whether the run should skip the affected item and
// continue. Only configuration errors abort a run.
func (e *CrawlError) SkippableByRun() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeParsing, ErrorTypeExtraction, ErrorTypeStore:
		return true
	default:
		return false
	}
}

// New creates a new CrawlError
func New(errType ErrorType, component, message string, err error) *CrawlError {
	return &CrawlError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(component, message string, err error) *CrawlError {
	return New(ErrorTypeNetwork, component, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(component, message string, err error) *CrawlError {
	return New(ErrorTypeParsing, component, message, err)
}

// NewStore creates a new store error
func NewStore(component, message string, err error) *CrawlError {
	return New(ErrorTypeStore, component, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *CrawlError {
	return New(ErrorTypeConfiguration, "", message, err)
}
