package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeTransport  = "TRANSPORT_ERROR"
	CodeExtraction = "EXTRACTION_ERROR"
)

// ScrapeError is the base error carried by everything the scraping layers
// raise. Context holds whatever identifies the failing page or field.
type ScrapeError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// TransportError means a page could not be fetched at all: network failure
// or a non-2xx HTTP status. It is never retried.
type TransportError struct {
	*ScrapeError
	URL        string
	StatusCode int
}

func NewTransportError(message, url string, statusCode int, cause error) *TransportError {
	return &TransportError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeTransport,
			Context: map[string]any{
				"url":         url,
				"status_code": statusCode,
			},
			Cause: cause,
		},
		URL:        url,
		StatusCode: statusCode,
	}
}

// ExtractionError means a page was fetched but its markup did not match what
// the extractor expects: a missing selector target or a required field that
// would not parse.
type ExtractionError struct {
	*ScrapeError
	URL   string
	Field string
}

func NewExtractionError(message, url, field string, cause error) *ExtractionError {
	return &ExtractionError{
		ScrapeError: &ScrapeError{
			Message: message,
			Code:    CodeExtraction,
			Context: map[string]any{
				"url":   url,
				"field": field,
			},
			Cause: cause,
		},
		URL:   url,
		Field: field,
	}
}

func IsTransport(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

func IsExtraction(err error) bool {
	var ee *ExtractionError
	return stderrors.As(err, &ee)
}
