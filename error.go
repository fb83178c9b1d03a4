package newsbrowse

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("newsbrowse error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// DiscoveryError reports that the pagination boundary of a listing could
// not be read.
type DiscoveryError struct {
	Source string
	Kind   SourceKind
	URL    string
	Err    error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover %s pages of %q at %s: %v", e.Kind, e.Source, e.URL, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ExtractionError reports that metadata extraction for one listing page, or
// text extraction for one article, failed.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SourceCrawlError is the aggregate failure of one configured source.
type SourceCrawlError struct {
	Source string
	Err    error
}

func (e *SourceCrawlError) Error() string {
	return fmt.Sprintf("crawl source %q: %v", e.Source, e.Err)
}

func (e *SourceCrawlError) Unwrap() error { return e.Err }

// PersistenceError reports that a result table could not be serialized or
// written to its destination.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
